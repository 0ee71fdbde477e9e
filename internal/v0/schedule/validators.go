package schedule

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"SchedulingAPI/internal/timegrid"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
const (
	halfHourTag  = "halfhour"
	schoolDayTag = "schoolday"
)

var (
	translator   ut.Translator
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the schedule tags on gin's validator engine.
// Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerValidators()
	})
	return registerErr
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not a go-playground validator")
	}

	// English messages for the built in tags.
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(halfHourTag, validateStartSlot); err != nil {
		return err
	}
	if err := v.RegisterValidation(schoolDayTag, validateSchoolDay); err != nil {
		return err
	}

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{halfHourTag, schoolDayTag} {
		if err := v.RegisterTranslation(tag, translator, noop, translateCustom); err != nil {
			return err
		}
	}
	return nil
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case halfHourTag:
		return fe.Field() + " must fall on a 30-minute boundary between 7:00 and 20:00"
	case schoolDayTag:
		return fe.Field() + " must be one of Mon, Tues, Wed, Thurs, Fri, Sat"
	default:
		return ""
	}
}

// validateStartSlot accepts a start hour that begins a grid row.
func validateStartSlot(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		start := fl.Field().Float()
		return timegrid.IsAligned(start) && timegrid.InGrid(timegrid.RowIndex(start))
	}
	return false
}

func validateSchoolDay(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := timegrid.ParseDay(s)
		return err == nil
	}
	return false
}

// bindingMessages turns a ShouldBind error into one message per field.
func bindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			msgs = append(msgs, fe.Translate(translator))
			continue
		}
		msgs = append(msgs, fe.Error())
	}
	return msgs
}

//This project is the facility scheduling backend API for the OpenSourceDUTH team.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
