package timer

import (
	"fmt"
	"time"

	"github.com/chihironakai0517/workout-tracker/pkg"
)

type MessageType string

const (
	// client -> server
	TypeStart  MessageType = "TIMER_START"
	TypePause  MessageType = "TIMER_PAUSE"
	TypeResume MessageType = "TIMER_RESUME"
	TypeStop   MessageType = "TIMER_STOP"
	// both directions
	TypeSync MessageType = "TIMER_SYNC"
	// server -> client
	TypeUpdate   MessageType = "TIMER_UPDATE"
	TypeComplete MessageType = "TIMER_COMPLETE"
	TypeError    MessageType = "TIMER_ERROR"
)

// DefaultDuration is used when a start command carries no duration.
const DefaultDuration = 600

// Command is an inbound control message.
type Command struct {
	Type     MessageType `json:"type"`
	TimerID  string      `json:"timerId,omitempty"`
	Duration int         `json:"duration,omitempty"`
}

// Message is an outbound notification.
type Message struct {
	Type          MessageType `json:"type"`
	TimerID       string      `json:"timerId,omitempty"`
	RemainingTime int         `json:"remainingTime"`
	IsComplete    bool        `json:"isComplete"`
	Timers        []State     `json:"timers,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// State is the persisted and reported view of a timer.
type State struct {
	TimerID       string    `json:"timerId"`
	Duration      int       `json:"duration"`
	RemainingTime int       `json:"remainingTime"`
	IsActive      bool      `json:"isActive"`
	IsPaused      bool      `json:"isPaused"`
	StartedAt     time.Time `json:"startedAt"`
	EndTime       time.Time `json:"endTime"`
	SavedAt       time.Time `json:"savedAt"`
}

// FormatTime renders seconds as MM:SS.
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// NewTimerID returns timer-<unix millis>-<random suffix>.
func NewTimerID(now time.Time) string {
	suffix, err := pkg.GenerateRandomString(9)
	if err != nil {
		suffix = fmt.Sprintf("%d", now.UnixNano()%1e9)
	}
	return fmt.Sprintf("timer-%d-%s", now.UnixMilli(), suffix)
}

// remainingSeconds = max(0, ceil((end - now) / 1s)).
func remainingSeconds(end, now time.Time) int {
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}
