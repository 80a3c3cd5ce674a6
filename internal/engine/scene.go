package engine

// Scene owns the entities of a world.
type Scene struct {
	Name     string
	Entities []*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Entities: make([]*Entity, 0),
	}
}

func (s *Scene) AddEntity(e *Entity) {
	e.Scene = s
	s.Entities = append(s.Entities, e)
}

// RemoveEntity reports whether e was part of the scene.
func (s *Scene) RemoveEntity(e *Entity) bool {
	for i, obj := range s.Entities {
		if obj == e {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			e.Scene = nil
			return true
		}
	}
	return false
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*Entity {
	var result []*Entity
	for _, e := range s.Entities {
		if e.HasTag(tag) {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	return len(s.Entities)
}
