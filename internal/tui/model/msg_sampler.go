//go:build msgsample

package model

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"
)

// Built only with -tags msgsample. Counts the message types reaching Update and
// writes them to msg_sample.yaml when the dashboard quits.

var (
	sampleMu     sync.Mutex
	sampleCounts = map[string]int64{}
	sampleOnce   sync.Once
)

// RecordMsgSample counts one message of msg's type.
func RecordMsgSample(msg tea.Msg) {
	sampleMu.Lock()
	sampleCounts[fmt.Sprintf("%T", msg)]++
	sampleMu.Unlock()
}

// FinalizeMsgSampling writes the counts once.
func FinalizeMsgSampling() {
	sampleOnce.Do(func() {
		sampleMu.Lock()
		defer sampleMu.Unlock()
		b, err := yaml.Marshal(sampleCounts)
		if err != nil {
			return
		}
		_ = os.WriteFile("msg_sample.yaml", b, 0o644)
	})
}
