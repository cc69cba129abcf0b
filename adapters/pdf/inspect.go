package resumepdf

import (
	"bytes"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/goliatone/go-resume/resume"
)

// PageCount returns the number of pages in a PDF document.
func PageCount(data []byte) (count int, err error) {
	if len(data) == 0 {
		return 0, resume.NewError(resume.KindValidation, "pdf document is empty", nil)
	}
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = resume.NewError(resume.KindParse, "pdf document is malformed", nil)
		}
	}()

	reader, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, resume.NewError(resume.KindParse, "read pdf document", err)
	}
	return reader.NumPage(), nil
}
