package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)
}

// translateError turns validator failures into human-readable messages.
func translateError(err error) []string {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		msgs = append(msgs, fieldErr.Translate(trans))
	}
	return msgs
}

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (c *Controller) errorResponse(w http.ResponseWriter, r *http.Request,
	status int, message interface{}) {

	env := envelope{"error": envelope{"message": message}}
	if err := writeJSON(w, status, env, nil); err != nil {
		c.log.Error("write error response", zap.Error(err),
			zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (c *Controller) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	c.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (c *Controller) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	c.errorResponse(w, r, http.StatusUnprocessableEntity, translateError(err))
}

func (c *Controller) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	c.log.Error("internal server error", zap.Error(err), zap.String("path", r.URL.Path))
	c.errorResponse(w, r, http.StatusInternalServerError,
		"the server encountered a problem and could not process your request")
}

// getStatusCode maps domain error codes onto HTTP statuses.
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *util.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code() {
		case util.ErrBadParamInput:
			return http.StatusBadRequest
		case util.ErrNotFound, util.ErrNoRouteFound:
			return http.StatusNotFound
		case util.ErrNoSupplierForCost:
			return http.StatusUnprocessableEntity
		case util.ErrNetwork:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}
