package blogHandler

import (
	"io"
	"mime/multipart"
	"strconv"

	blogs "DevBlogFrontend/internal/api/blog"
	"DevBlogFrontend/pkg/utils"
)

const maxThumbnailSize = 5 << 20

type formValues map[string][]string

func (f formValues) get(name string) (string, bool) {
	v, ok := f[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// tags takes every repeated "tags" field literally and appends the entries
// of a "tags_csv" field split on commas.
func (f formValues) tags() ([]string, bool) {
	values, repeated := f["tags"]
	csv, hasCSV := f.get("tags_csv")
	if !repeated && !hasCSV {
		return nil, false
	}

	tags := append([]string{}, values...)
	if hasCSV {
		tags = append(tags, utils.ParseTags(csv)...)
	}
	return tags, true
}

func (f formValues) boolean(name string) (*bool, error) {
	raw, ok := f.get(name)
	if !ok || raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// thumbnail prefers an uploaded file over a thumbnail URL field.
func thumbnail(form *multipart.Form, values formValues) (*blogs.Thumbnail, error) {
	if files := form.File["thumbnail"]; len(files) > 0 {
		fh := files[0]
		if fh.Size > maxThumbnailSize {
			return nil, blogs.ErrThumbnailTooLarge
		}

		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxThumbnailSize+1))
		if err != nil {
			return nil, err
		}

		return &blogs.Thumbnail{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}

	if url, ok := values.get("thumbnail"); ok && url != "" {
		return &blogs.Thumbnail{URL: url}, nil
	}
	return nil, nil
}
