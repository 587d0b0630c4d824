package handlers

import (
	"fmt"
	"mime/multipart"
	"sort"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"desaparecidos/internal/domain/submission"
)

// attachments describes the uploaded files whose field name passes match.
// Content types are sniffed from the bytes; the client's claim is ignored.
// Nothing is kept once the request ends.
func (h *BaseHandler) attachments(c *gin.Context, match func(field string) bool) ([]submission.Attachment, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		// urlencoded posts carry no files
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, translateBindError(err, h.maxBodyBytes)
	}

	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		if match(name) {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)

	var out []submission.Attachment
	for _, name := range fields {
		for _, fh := range form.File[name] {
			if fh.Size == 0 {
				continue
			}
			ct, err := sniff(fh)
			if err != nil {
				return nil, fmt.Errorf("read upload %s: %w", name, err)
			}
			out = append(out, submission.Attachment{
				Field:       name,
				Filename:    fh.Filename,
				Size:        fh.Size,
				ContentType: ct,
			})
		}
	}
	return out, nil
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}
