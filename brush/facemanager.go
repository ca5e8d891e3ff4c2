package brush

// faceManager tracks face identities during a single mover operation. Side
// splits spawn copies of an original face; when a side is dropped during
// cleanup, a copy is promoted to replace the original if one exists, so the
// caller keeps a stable face identity wherever one fragment of the original
// side remains. The manager is transient: its result is the (new, dropped)
// face sets handed back to the caller.
type faceManager struct {
	copies  map[*Face]map[*Face]bool
	dropped map[*Face]bool
}

func newFaceManager() *faceManager {
	return &faceManager{
		copies:  make(map[*Face]map[*Face]bool),
		dropped: make(map[*Face]bool),
	}
}

// addFace records copy as spawned from original.
func (m *faceManager) addFace(original, copy *Face) {
	if m.copies[original] == nil {
		m.copies[original] = make(map[*Face]bool)
	}
	m.copies[original][copy] = true
}

// dropFace releases the face of side. If the face is an original with
// copies, one copy is consumed and the original takes its place on the
// copy's side. If the face is itself a copy, it is simply discarded. Only a
// face that is neither ends up in the dropped set.
func (m *faceManager) dropFace(side *Side) {
	face := side.face
	side.face = nil

	if copies, ok := m.copies[face]; ok {
		var copy *Face
		for c := range copies {
			copy = c
			break
		}
		delete(copies, copy)
		if len(copies) == 0 {
			delete(m.copies, face)
		}

		copySide := copy.Side()
		copySide.face = face
		face.setSide(copySide)
		return
	}

	for original, copies := range m.copies {
		if copies[face] {
			delete(copies, face)
			if len(copies) == 0 {
				delete(m.copies, original)
			}
			return
		}
	}

	m.dropped[face] = true
}

// result returns the surviving copies as new faces and the released
// originals as dropped faces, resetting the manager.
func (m *faceManager) result() (newFaces, droppedFaces []*Face) {
	for _, copies := range m.copies {
		for copy := range copies {
			newFaces = append(newFaces, copy)
		}
	}
	for face := range m.dropped {
		droppedFaces = append(droppedFaces, face)
	}
	m.copies = make(map[*Face]map[*Face]bool)
	m.dropped = make(map[*Face]bool)
	return newFaces, droppedFaces
}
