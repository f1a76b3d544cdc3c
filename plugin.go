// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"code.hybscloud.com/kont"
)

// Handler resolves one operation kind.
// The returned computation may yield further operations, [Delegate] the
// operation onward, [Await] an external completion, or [Throw].
type Handler func(op Operation, ctx *Context) kont.Eff[any]

// Validator reports whether op is acceptable for its kind.
type Validator func(op Operation) bool

// Plugin contributes handlers and validators to a [Runtime].
//
// With a Namespace (which must start with [NamespacePrefix]), unqualified
// handler keys are registered as Namespace + "/" + key. Without one,
// every handler key must already be qualified. Validator keys are always
// unqualified and require a Namespace.
type Plugin struct {
	Namespace  string
	Handlers   map[string][]Handler
	Validators map[string]Validator
}

func qualified(kind string) bool {
	return strings.HasPrefix(kind, NamespacePrefix)
}

// registration is one handler in a dispatch chain.
type registration struct {
	handler   Handler
	namespace string
}

type validation struct {
	validator Validator
	namespace string
}

// registry is the immutable dispatch table of a runtime.
type registry struct {
	chains     map[string][]registration
	validators map[string]validation
}

// newRegistry builds the dispatch table from plugins in order.
// Earlier plugins take priority within a chain.
func newRegistry(plugins []Plugin) (*registry, error) {
	r := &registry{
		chains:     make(map[string][]registration),
		validators: make(map[string]validation),
	}
	for _, p := range plugins {
		if err := r.add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) add(p Plugin) error {
	hasNamespace := p.Namespace != ""
	if hasNamespace && !qualified(p.Namespace) {
		return &RegistrationError{
			Namespace: p.Namespace,
			Reason:    fmt.Sprintf("namespace should start with %q", NamespacePrefix),
		}
	}
	for _, kind := range slices.Sorted(maps.Keys(p.Handlers)) {
		nsKind := kind
		switch {
		case qualified(kind):
		case hasNamespace:
			nsKind = p.Namespace + "/" + kind
		default:
			return &RegistrationError{Kind: kind, Reason: "plugin without namespace must have only qualified handlers"}
		}
		for _, h := range p.Handlers[kind] {
			if h == nil {
				return &RegistrationError{Namespace: p.Namespace, Kind: kind, Reason: "nil handler"}
			}
			r.chains[nsKind] = append(r.chains[nsKind], registration{handler: h, namespace: p.Namespace})
		}
	}
	if len(p.Validators) == 0 {
		return nil
	}
	if !hasNamespace {
		return &RegistrationError{Reason: "plugin without namespace must not have validators"}
	}
	for _, kind := range slices.Sorted(maps.Keys(p.Validators)) {
		if qualified(kind) {
			return &RegistrationError{Namespace: p.Namespace, Kind: kind, Reason: "qualified validators are forbidden"}
		}
		v := p.Validators[kind]
		if v == nil {
			return &RegistrationError{Namespace: p.Namespace, Kind: kind, Reason: "nil validator"}
		}
		r.validators[p.Namespace+"/"+kind] = validation{validator: v, namespace: p.Namespace}
	}
	return nil
}

// validate applies the validator registered for op's kind, if any.
func (r *registry) validate(op Operation) error {
	kind := op.Kind()
	v, ok := r.validators[kind]
	if !ok || v.validator(op) {
		return nil
	}
	return &ValidationError{Kind: kind, Namespace: v.namespace}
}

// handler returns the index-th handler of kind's chain.
func (r *registry) handler(kind string, index int) (Handler, bool) {
	chain := r.chains[kind]
	if index < len(chain) {
		return chain[index].handler, true
	}
	return nil, false
}

// has reports whether any handler is registered for kind.
func (r *registry) has(kind string) bool {
	return len(r.chains[kind]) > 0
}

// kinds returns the number of registered kinds.
func (r *registry) kinds() int {
	return len(r.chains)
}

// mismatched raises for an operation whose kind a handler serves but
// whose payload type it does not understand.
func mismatched(op Operation) kont.Eff[any] {
	return Throw[any](&UnhandledOperationError{Kind: fmt.Sprintf("%s (%T)", op.Kind(), op)})
}
