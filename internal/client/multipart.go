package client

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

type formPart struct {
	name  string
	value string
	file  *File
}

// Multipart is an ordered form body. Repeated names are sent as repeated
// fields, which is how tags travel.
type Multipart struct {
	parts []formPart
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) Add(name, value string) *Multipart {
	m.parts = append(m.parts, formPart{name: name, value: value})
	return m
}

func (m *Multipart) AddFile(name string, f File) *Multipart {
	m.parts = append(m.parts, formPart{name: name, file: &f})
	return m
}

// Has reports whether any part uses name.
func (m *Multipart) Has(name string) bool {
	for _, p := range m.parts {
		if p.name == name {
			return true
		}
	}
	return false
}

func (m *Multipart) Values(name string) []string {
	var out []string
	for _, p := range m.parts {
		if p.name == name && p.file == nil {
			out = append(out, p.value)
		}
	}
	return out
}

// Encode writes the form to w and returns the content type with boundary.
func (m *Multipart) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	for _, p := range m.parts {
		if p.file == nil {
			if err := mw.WriteField(p.name, p.value); err != nil {
				return "", err
			}
			continue
		}

		contentType := p.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(p.name), escapeQuotes(p.file.Filename)))
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(p.file.Data); err != nil {
			return "", err
		}
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
