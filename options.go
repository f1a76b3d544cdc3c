// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"log/slog"
	"math/rand/v2"
)

// Option configures a [Runtime] at construction.
type Option func(*options)

type options struct {
	plugins []Plugin
	logger  *slog.Logger
	source  rand.Source
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithPlugins appends plugins to the runtime's plugin list.
// Plugins registered earlier take dispatch priority; all of them take
// priority over the built-in plugins.
func WithPlugins(plugins ...Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugins...)
	}
}

// WithLogger sets the logger for registration and dispatch diagnostics.
// Records are emitted at debug level. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRandSource sets the randomness used to break ties between ready
// select cases. A seeded source makes select choices reproducible.
func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.source = src
	}
}
