package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
)

const maxBodyBytes = 1 << 20

var formDecoder = form.NewDecoder()

var errEmptyBody = errors.New("request body is empty")

// decodeBody fills dst from a JSON body or from url-encoded / multipart form
// values, depending on Content-Type.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
		return formDecoder.Decode(dst, r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return err
		}
		return formDecoder.Decode(dst, r.PostForm)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}
