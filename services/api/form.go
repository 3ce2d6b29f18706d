package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"

	"github.com/santarita/portal/core/resource"
)

func encodeForm(form *resource.Form) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range form.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", errors.Wrapf(err, "writing form field %q", name)
		}
	}
	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.FieldName, file.Name)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating form file %q", file.Name)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", errors.Wrapf(err, "copying form file %q", file.Name)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart writer")
	}
	return buf, writer.FormDataContentType(), nil
}

func (c *Client) PostForm(ctx context.Context, path string, form *resource.Form, out interface{}) error {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, contentType, out)
}

func (c *Client) PutForm(ctx context.Context, path string, form *resource.Form, out interface{}) error {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, body, contentType, out)
}

// Resources adapts the client to the mutation helpers' transport,
// routing each payload type to the matching encoding.
func (c *Client) Resources() resource.Transport {
	return resourceTransport{c}
}

type resourceTransport struct {
	c *Client
}

func (t resourceTransport) Post(ctx context.Context, path string, payload resource.Payload) error {
	switch p := payload.(type) {
	case resource.JSON:
		return t.c.Post(ctx, path, p.Value, nil)
	case *resource.Form:
		return t.c.PostForm(ctx, path, p, nil)
	case resource.Form:
		return t.c.PostForm(ctx, path, &p, nil)
	default:
		return errors.Errorf("unsupported payload type %T", payload)
	}
}

func (t resourceTransport) Put(ctx context.Context, path string, payload resource.Payload) error {
	switch p := payload.(type) {
	case resource.JSON:
		return t.c.Put(ctx, path, p.Value, nil)
	case *resource.Form:
		return t.c.PutForm(ctx, path, p, nil)
	case resource.Form:
		return t.c.PutForm(ctx, path, &p, nil)
	default:
		return errors.Errorf("unsupported payload type %T", payload)
	}
}

func (t resourceTransport) Delete(ctx context.Context, path string) error {
	return t.c.Delete(ctx, path)
}
