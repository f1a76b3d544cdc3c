// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spoon

import (
	"strconv"

	"code.hybscloud.com/atomix"
)

// Serial is a monotonically increasing identifier.
// Channels and contexts draw from separate counters.
type Serial = uint32

var (
	chanCounter    atomix.Uint32
	contextCounter atomix.Uint32
)

func nextChanSerial() Serial {
	return chanCounter.Add(1)
}

func nextContextSerial() Serial {
	return contextCounter.Add(1)
}

// Handle is an unforgeable reference to a channel.
// Every [MakeChan] yields a distinct handle, regardless of capacity.
// The channel lives as long as a copy of its handle is reachable.
// The zero Handle refers to no channel.
type Handle struct {
	serial Serial
	ch     *channel
}

// Serial returns the allocation serial of the channel.
func (h Handle) Serial() Serial {
	return h.serial
}

func (h Handle) String() string {
	return "chan #" + strconv.FormatUint(uint64(h.serial), 10)
}
