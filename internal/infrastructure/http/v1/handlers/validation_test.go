package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/infrastructure/http/v1/dto"
)

func TestTranslateBindError_BlankFields(t *testing.T) {
	RegisterValidators()

	form := dto.ContactForm{Name: "Ana", Email: "  ", Subject: "", Message: "oi"}
	err := binding.Validator.ValidateStruct(&form)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(translateBindError(err, 0))
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"email", "assunto"}, appErr.Details["fields"])
}

func TestTranslateBindError_AgeIsRequired(t *testing.T) {
	RegisterValidators()

	form := dto.MissingReportForm{
		PersonName: "Pedro", Sex: "MASCULINO", DisappearedDate: "2025-01-01",
		DisappearedAt: "Cuiabá", Circumstances: "x", InformantName: "Lu",
		Phone: "65999998888", Email: "lu@example.com",
	}
	err := binding.Validator.ValidateStruct(&form)
	require.Error(t, err)

	appErr, _ := apperror.AsAppError(translateBindError(err, 0))
	assert.Equal(t, []string{"idade"}, appErr.Details["fields"])
}

func TestTranslateBindError_TooLarge(t *testing.T) {
	err := fmt.Errorf("multipart: NextPart: %w", &http.MaxBytesError{Limit: 10})
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperror.GetHTTPStatus(translateBindError(err, 10)))
}

func TestTranslateBindError_Other(t *testing.T) {
	err := translateBindError(errors.New(`strconv.ParseInt: parsing "abc": invalid syntax`), 0)
	assert.True(t, apperror.IsValidation(err))
}

func TestIsTipPhoto(t *testing.T) {
	assert.True(t, isTipPhoto("foto_0"))
	assert.True(t, isTipPhoto("foto_12"))
	assert.False(t, isTipPhoto("fotos"))
	assert.False(t, isTipPhoto("nome"))
}
