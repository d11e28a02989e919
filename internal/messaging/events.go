package messaging

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pixil98/go-scene/internal/scene"
)

// Subjects scene events are published on. Every event also goes out on its
// character's own subject, scene.character.<name>, so observers can follow a
// single actor.
const (
	SubjectCharacterAdded   = "scene.character.added"
	SubjectCharacterRemoved = "scene.character.removed"
	SubjectMovementStart    = "scene.movement.start"
	SubjectMovementEnd      = "scene.movement.end"
	SubjectStateChanged     = "scene.state.changed"

	characterSubjectPrefix = "scene.character."
)

// Event is the JSON envelope published for every scene transition.
type Event struct {
	Kind          string    `json:"kind"`
	Character     string    `json:"character"`
	State         string    `json:"state,omitempty"`
	PreviousState string    `json:"previous_state,omitempty"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to,omitempty"`
	MovementId    string    `json:"movement_id,omitempty"`
	X             int       `json:"x"`
	Y             int       `json:"y"`
	At            time.Time `json:"at"`
}

// Publisher sends a payload to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SceneEvents mirrors every scene transition onto the message bus. It is
// registered as a scene listener; publish failures are logged, never
// propagated back into the model.
type SceneEvents struct {
	pub Publisher
	now func() time.Time
}

func NewSceneEvents(pub Publisher) *SceneEvents {
	return &SceneEvents{
		pub: pub,
		now: time.Now,
	}
}

func (se *SceneEvents) OnCharacterAdded(c *scene.Character) {
	pos := c.Position()
	se.publish(SubjectCharacterAdded, Event{
		Kind:      "character_added",
		Character: c.Name(),
		State:     c.State().Name(),
		X:         pos.X(),
		Y:         pos.Y(),
	})
}

func (se *SceneEvents) OnCharacterRemoved(c *scene.Character) {
	pos := c.Position()
	se.publish(SubjectCharacterRemoved, Event{
		Kind:      "character_removed",
		Character: c.Name(),
		X:         pos.X(),
		Y:         pos.Y(),
	})
}

func (se *SceneEvents) OnMovementStart(m *scene.Movement) {
	x, y, _ := m.At()
	se.publish(SubjectMovementStart, Event{
		Kind:       "movement_start",
		Character:  m.Character().Name(),
		From:       m.Start().Name(),
		To:         m.End().Name(),
		MovementId: m.ID().String(),
		X:          x,
		Y:          y,
	})
}

func (se *SceneEvents) OnMovementEnd(m *scene.Movement) {
	x, y, _ := m.At()
	se.publish(SubjectMovementEnd, Event{
		Kind:       "movement_end",
		Character:  m.Character().Name(),
		From:       m.Start().Name(),
		To:         m.End().Name(),
		MovementId: m.ID().String(),
		X:          x,
		Y:          y,
	})
}

func (se *SceneEvents) OnStateChanged(c *scene.Character, previous *scene.State) {
	pos := c.Position()
	se.publish(SubjectStateChanged, Event{
		Kind:          "state_changed",
		Character:     c.Name(),
		State:         c.State().Name(),
		PreviousState: previous.Name(),
		X:             pos.X(),
		Y:             pos.Y(),
	})
}

func (se *SceneEvents) publish(subject string, ev Event) {
	ev.At = se.now()

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshaling scene event", "subject", subject, "error", err)
		return
	}

	if err := se.pub.Publish(subject, data); err != nil {
		slog.Warn("publishing scene event", "subject", subject, "error", err)
	}
	if err := se.pub.Publish(characterSubjectPrefix+ev.Character, data); err != nil {
		slog.Warn("publishing scene event", "character", ev.Character, "error", err)
	}
}
