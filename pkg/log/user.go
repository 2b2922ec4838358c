// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints command level feedback: loaded patch files,
// validation results and fatal errors
type UserLogger struct {
	log     zerolog.Logger // for debug/error logging
	success pterm.PrefixPrinter
	info    pterm.PrefixPrinter
	warning pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// 🎯 NewUserLogger creates a user logger printing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log:     *zerolog.Ctx(ctx),
		success: *pterm.Success.WithPrefix(pterm.Prefix{Text: "✅", Style: pterm.Success.Prefix.Style}),
		info:    *pterm.Info.WithPrefix(pterm.Prefix{Text: "📦", Style: pterm.Info.Prefix.Style}),
		warning: *pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️", Style: pterm.Warning.Prefix.Style}),
		failure: *pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style}),
	}
}

// WithWriter returns a copy of the logger printing to w
func (u *UserLogger) WithWriter(w io.Writer) *UserLogger {
	return &UserLogger{
		log:     u.log,
		success: *u.success.WithWriter(w),
		info:    *u.info.WithWriter(w),
		warning: *u.warning.WithWriter(w),
		failure: *u.failure.WithWriter(w),
	}
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.info.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.success.Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.failure.Println(description)
		u.failure.Println(err)
		u.log.Error().Err(err).Msg(description)
	default:
		u.warning.Println(description)
		u.log.Warn().Msg(description)
	}
}
