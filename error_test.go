// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon_test

import (
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spoon"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&spoon.RegistrationError{Reason: "bad"}, "spoon: plugin: bad"},
		{&spoon.RegistrationError{Namespace: "x", Reason: "bad"}, `spoon: plugin "x": bad`},
		{&spoon.RegistrationError{Namespace: "@x", Kind: "k", Reason: "bad"}, `spoon: plugin "@x": bad, found "k"`},
		{&spoon.ValidationError{Kind: "@x/k", Namespace: "@x"}, `spoon: invalid operation "@x/k" for plugin "@x"`},
		{&spoon.UnhandledOperationError{Kind: "@x/k"}, `spoon: no handler for "@x/k"`},
		{&spoon.ChannelStateError{Op: "send", Err: spoon.ErrSendOnClosed}, "spoon: send on closed channel (send on chan #0)"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Fatalf("got %q, want %q", got, tt.want)
		}
	}
}

func TestChannelStateErrorUnwrap(t *testing.T) {
	err := error(&spoon.ChannelStateError{Op: "close", Err: spoon.ErrCloseOnClosed})
	if !errors.Is(err, spoon.ErrCloseOnClosed) {
		t.Fatalf("errors.Is failed for %v", err)
	}
	if errors.Is(err, spoon.ErrSendOnClosed) {
		t.Fatalf("errors.Is matched the wrong sentinel")
	}
}

func TestRegistrationErrorNamesPrefix(t *testing.T) {
	_, err := spoon.New(spoon.WithPlugins(spoon.Plugin{Namespace: "plain"}))
	if err == nil || !strings.Contains(err.Error(), spoon.NamespacePrefix) {
		t.Fatalf("got %v, want a message naming %q", err, spoon.NamespacePrefix)
	}
}

func TestPollPending(t *testing.T) {
	rt := newRuntime(t)
	h := makeChan(t, rt, 0)
	f := rt.Start(spoon.Recv{Chan: h})
	v, err := f.Poll()
	if !iox.IsWouldBlock(err) || v != nil {
		t.Fatalf("got (%v, %v), want ErrWouldBlock", v, err)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Must did not panic")
		}
	}()
	spoon.Must(spoon.New(spoon.WithPlugins(spoon.Plugin{Namespace: "plain"})))
}
