package entity

// FormSnapshot is the result of one field discovery pass.
type FormSnapshot struct {
	Forms  int
	Fields []FieldDescriptor
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
