//go:build !msgsample

package model

import tea "github.com/charmbracelet/bubbletea"

// RecordMsgSample is a no-op unless built with the msgsample tag.
func RecordMsgSample(tea.Msg) {}

// FinalizeMsgSampling is a no-op unless built with the msgsample tag.
func FinalizeMsgSampling() {}
