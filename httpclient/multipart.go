package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FileField is a payload value that is sent as a file part when the
// request content type is multipart/form-data. The part name is the
// payload key the value is stored under.
type FileField struct {
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. If empty, application/octet-stream is used.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader streams the file content.
	Reader io.Reader
}

// encodeMultipart appends every top-level field of payload to a new form
// and returns the body plus the Content-Type carrying the boundary.
func encodeMultipart(payload any) ([]byte, string, error) {
	params, ok := enumerate(payload)
	if !ok {
		return nil, "", fmt.Errorf("payload of type %T cannot be appended to a multipart form", payload)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range params {
		var err error
		switch v := kv.Value.(type) {
		case FileField:
			err = writeFilePart(w, kv.Key, v)
		case *FileField:
			if v != nil {
				err = writeFilePart(w, kv.Key, *v)
			}
		default:
			err = w.WriteField(kv.Key, formatValue(v))
		}
		if err != nil {
			return nil, "", fmt.Errorf("multipart field %q: %w", kv.Key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, name string, f FileField) error {
	var part io.Writer
	var err error
	if f.ContentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(name)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
		header.Set("Content-Type", f.ContentType)
		part, err = w.CreatePart(header)
	} else {
		part, err = w.CreateFormFile(name, f.FileName)
	}
	if err != nil {
		return err
	}

	if f.Data != nil {
		_, err = part.Write(f.Data)
	} else if f.Reader != nil {
		_, err = io.Copy(part, f.Reader)
	}
	return err
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
