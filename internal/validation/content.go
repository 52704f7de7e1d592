package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ContentMinLength = 1
	ContentMaxLength = 200
)

var ErrContentLength = fmt.Errorf("댓글은 %d~%d자여야 합니다.", ContentMinLength, ContentMaxLength)

var (
	validate    = validator.New(validator.WithRequiredStructEnabled())
	contentRule = fmt.Sprintf("min=%d,max=%d", ContentMinLength, ContentMaxLength)
)

// Content trims raw and checks its length in characters. The trimmed value
// is what gets sent to the backend.
func Content(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if err := validate.Var(content, contentRule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return "", ErrContentLength
		}
		return "", err
	}

	return content, nil
}
