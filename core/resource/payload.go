package resource

import "io"

// Payload picks the transport explicitly: JSON bodies and multipart
// forms are distinct types, never sniffed from shape.
type Payload interface {
	isPayload()
}

// JSON is a payload serialized as a JSON request body.
type JSON struct {
	Value interface{}
}

func (JSON) isPayload() {}

// Form is a payload sent as a multipart form; the transport sets the
// boundary, not the caller.
type Form struct {
	Fields map[string]string
	Files  []File
}

func (Form) isPayload() {}

// File is one file part of a multipart form.
type File struct {
	FieldName string
	Name      string
	Content   io.Reader
}

// NewForm returns an empty multipart payload.
func NewForm() *Form {
	return &Form{Fields: map[string]string{}}
}

func (f *Form) AddField(name, value string) *Form {
	f.Fields[name] = value
	return f
}

func (f *Form) AddFile(fieldName, name string, content io.Reader) *Form {
	f.Files = append(f.Files, File{FieldName: fieldName, Name: name, Content: content})
	return f
}
