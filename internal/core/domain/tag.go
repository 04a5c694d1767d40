package domain

// Tag attributes a toggle to the team that declares it.
type Tag struct {
	Key   string `json:"-"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (t Tag) Equal(other Tag) bool {
	return t.Type == other.Type && t.Value == other.Value
}
