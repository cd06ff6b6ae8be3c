// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TypeValidator implements the source_type validation tag, which accepts the names
// of registered sources only.
type TypeValidator struct{}

func (TypeValidator) Tag() string { return "source_type" }

func (TypeValidator) AlwaysValidate() bool { return false }

func (TypeValidator) Validate(fl validator.FieldLevel) bool {
	return isRegistered(fl.Field().String())
}

func (TypeValidator) MessageTemplate() string { return "{0} must be one of [{1}]" }

func (TypeValidator) Translate(ut ut.Translator, fe validator.FieldError) string {
	msg, err := ut.T(fe.Tag(), fe.Field(), strings.Join(Types(), " "))
	if err != nil {
		return fe.Error()
	}

	return msg
}
