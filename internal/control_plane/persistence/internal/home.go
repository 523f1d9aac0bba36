package internal

import (
	"fmt"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
)

const DateFormat = "2006-01-02"

// HomeFile is the on-disk home description. Field names follow the file
// written by the setup tooling, so JSON files load unchanged.
type HomeFile struct {
	General   General    `yaml:"general"`
	Languages []Language `yaml:"languages"`
	Users     []User     `yaml:"users"`
	Roles     []Role     `yaml:"roles"`
	Rooms     []Room     `yaml:"rooms"`
	Commands  Commands   `yaml:"commands"`
}

type General struct {
	LegalAge int `yaml:"legal_age"`
}

type Language struct {
	Language string `yaml:"language"`
	Default  bool   `yaml:"default"`
}

type User struct {
	Name      string `yaml:"name"`
	BirthDate string `yaml:"birth_date"`
	Language  string `yaml:"language"`
}

// Age returns the full years elapsed between the birth date and now.
func (u User) Age(now time.Time) (int, error) {
	born, err := time.Parse(DateFormat, u.BirthDate)
	if err != nil {
		return 0, fmt.Errorf("birth date of %s: %w", u.Name, err)
	}
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years, nil
}

type Role struct {
	Role           string   `yaml:"role"`
	AgeRestriction bool     `yaml:"age_restriction"`
	Privileged     bool     `yaml:"privileged"`
	Users          []string `yaml:"users"`
}

type Room struct {
	Room    string   `yaml:"room"`
	Devices []Device `yaml:"devices"`
}

type Device struct {
	Position            string   `yaml:"position"`
	Installed           bool     `yaml:"installed"`
	ExternalPeripherals []string `yaml:"external_peripherals"`
}

type Commands struct {
	Local  []LocalCommand  `yaml:"local"`
	Remote []RemoteCommand `yaml:"remote"`
}

type CommandFlags struct {
	Description    string        `yaml:"description"`
	AgeRestriction bool          `yaml:"age_restriction"`
	Privileged     bool          `yaml:"privileged"`
	Phrases        []PhraseGroup `yaml:"phrases"`
}

// PhraseGroup lists every phrase that triggers a command in one language and
// the response spoken afterwards.
type PhraseGroup struct {
	Language string   `yaml:"language"`
	Phrases  []string `yaml:"phrases"`
	Response string   `yaml:"response"`
}

type LocalCommand struct {
	Command      string `yaml:"command"`
	CommandFlags `yaml:",inline"`
}

func (c LocalCommand) ToDomain(response string) (domain.Command, error) {
	return domain.NewCommandBuilder().
		WithLocalTarget(c.Command).
		WithDescription(c.Description).
		WithAgeRestricted(c.AgeRestriction).
		WithPrivileged(c.Privileged).
		WithResponse(response).
		Build()
}

type RemoteCommand struct {
	Peripheral   string `yaml:"peripheral"`
	Subtype      string `yaml:"subtype"`
	Action       string `yaml:"action"`
	Room         string `yaml:"room"`
	Position     string `yaml:"position"`
	CommandFlags `yaml:",inline"`
}

func (c RemoteCommand) ToDomain(response string) (domain.Command, error) {
	return domain.NewCommandBuilder().
		WithRemoteTarget(domain.RemoteTarget{
			Peripheral: c.Peripheral,
			Subtype:    c.Subtype,
			Action:     c.Action,
			Room:       c.Room,
			Position:   c.Position,
		}).
		WithDescription(c.Description).
		WithAgeRestricted(c.AgeRestriction).
		WithPrivileged(c.Privileged).
		WithResponse(response).
		Build()
}

func (r Room) ToDomain() []domain.Device {
	result := make([]domain.Device, 0, len(r.Devices))
	for _, d := range r.Devices {
		result = append(result, domain.Device{
			Room:                r.Room,
			Position:            d.Position,
			Installed:           d.Installed,
			ExternalPeripherals: append([]string(nil), d.ExternalPeripherals...),
		})
	}
	return result
}
