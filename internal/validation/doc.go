// OyoNews - Server-Rendered News Front End
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/oyonews

// Package validation checks form and request input with
// go-playground/validator before anything is sent to the CMS.
//
// Forms carry "form" tags naming their inputs and "validate" tags holding
// the rules. Failures come back as *RequestValidationError, whose
// FieldMessages feed inline form errors and whose Details feed the JSON
// error envelope.
//
//	form := validation.SignupForm{Username: u, Email: e, Password: p}
//	form.Normalize()
//	if err := validation.ValidateStruct(&form); err != nil {
//	    // render the form again with the messages
//	}
package validation
