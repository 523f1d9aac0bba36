package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/persistence/internal"

	"gopkg.in/yaml.v3"
)

const _defaultLegalAge = 18

var ErrAmbiguousPhrase = errors.New("phrase bound to more than one command")

type phraseKey struct {
	language domain.Language
	phrase   string
}

// homeSnapshot is an immutable, indexed view of one version of the home file.
type homeSnapshot struct {
	defaultLanguage domain.Language
	languages       []domain.Language
	commands        map[phraseKey]domain.Command
	users           map[string]internal.User
	roles           []internal.Role
	devices         []domain.Device
	warnings        []string
}

func readHomeFile(path string) (internal.HomeFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return internal.HomeFile{}, fmt.Errorf("reading home file: %w", err)
	}

	var file internal.HomeFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.HomeFile{}, fmt.Errorf("home file %s is empty", path)
		}
		return internal.HomeFile{}, fmt.Errorf("decoding home file: %w", err)
	}
	return file, nil
}

func newHomeSnapshot(file internal.HomeFile, now time.Time) (*homeSnapshot, error) {
	s := &homeSnapshot{
		commands: make(map[phraseKey]domain.Command),
		users:    make(map[string]internal.User, len(file.Users)),
		roles:    file.Roles,
	}

	if err := s.indexLanguages(file.Languages); err != nil {
		return nil, err
	}
	if err := s.indexUsers(file.Users); err != nil {
		return nil, err
	}
	s.checkRoles(file.General.LegalAge, now)

	for _, cmd := range file.Commands.Local {
		if err := s.indexCommand(cmd.CommandFlags, cmd.ToDomain); err != nil {
			return nil, fmt.Errorf("local command %q: %w", cmd.Command, err)
		}
	}
	for _, cmd := range file.Commands.Remote {
		if err := s.indexCommand(cmd.CommandFlags, cmd.ToDomain); err != nil {
			return nil, fmt.Errorf("remote command %s/%s/%s: %w", cmd.Room, cmd.Position, cmd.Peripheral, err)
		}
	}

	for _, room := range file.Rooms {
		s.devices = append(s.devices, room.ToDomain()...)
	}
	return s, nil
}

func (s *homeSnapshot) indexLanguages(languages []internal.Language) error {
	for _, l := range languages {
		if !domain.ValidLanguage(l.Language) {
			return fmt.Errorf("language %q must match ll-ll", l.Language)
		}
		language := domain.Language(l.Language)
		s.languages = append(s.languages, language)
		if !l.Default {
			continue
		}
		if s.defaultLanguage != "" {
			s.warn("languages %s and %s are both flagged as default, using %s", s.defaultLanguage, language, s.defaultLanguage)
			continue
		}
		s.defaultLanguage = language
	}

	if s.defaultLanguage == "" && len(s.languages) > 0 {
		s.defaultLanguage = s.languages[0]
		s.warn("no default language flagged, using %s", s.defaultLanguage)
	}
	return nil
}

func (s *homeSnapshot) indexUsers(users []internal.User) error {
	for _, u := range users {
		key := domain.UserName(u.Name).Normalize()
		if key == "" {
			return errors.New("user name cannot be empty")
		}
		if _, exists := s.users[key]; exists {
			return fmt.Errorf("user %q is defined twice", u.Name)
		}
		s.users[key] = u
	}
	return nil
}

// checkRoles reports adults holding an age restricted role and members that
// are not defined as users.
func (s *homeSnapshot) checkRoles(legalAge int, now time.Time) {
	if legalAge <= 0 {
		legalAge = _defaultLegalAge
	}

	for _, role := range s.roles {
		for _, member := range role.Users {
			user, ok := s.users[domain.UserName(member).Normalize()]
			if !ok || user.Name != member {
				s.warn("role %s lists unknown user %s", role.Role, member)
				continue
			}
			if !role.AgeRestriction {
				continue
			}
			age, err := user.Age(now)
			if err != nil {
				s.warn("%v", err)
				continue
			}
			if age >= legalAge {
				s.warn("user %s is %d but holds age restricted role %s", user.Name, age, role.Role)
			}
		}
	}
}

func (s *homeSnapshot) indexCommand(flags internal.CommandFlags, build func(response string) (domain.Command, error)) error {
	for _, group := range flags.Phrases {
		language := domain.Language(group.Language)
		if !slices.Contains(s.languages, language) {
			s.warn("phrases in uninstalled language %s are ignored", language)
			continue
		}

		cmd, err := build(group.Response)
		if err != nil {
			return err
		}

		for _, raw := range group.Phrases {
			phrase := domain.NormalizePhrase(raw)
			if phrase == "" {
				continue
			}
			if _, err := domain.PhraseThreshold(phrase); err != nil {
				s.warn("%v", err)
			}

			key := phraseKey{language: language, phrase: phrase}
			if existing, ok := s.commands[key]; ok && existing.Key() != cmd.Key() {
				return fmt.Errorf("%w: %q (%s) also triggers %s", ErrAmbiguousPhrase, phrase, language, existing.Key())
			}
			s.commands[key] = cmd
		}
	}
	return nil
}

func (s *homeSnapshot) warn(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func (s *homeSnapshot) resolve(phrase string, language domain.Language) (domain.Command, error) {
	if language == "" {
		language = s.defaultLanguage
	}
	cmd, ok := s.commands[phraseKey{language: language, phrase: domain.NormalizePhrase(phrase)}]
	if !ok {
		return domain.Command{}, domain.ErrPhraseNotFound
	}
	return cmd, nil
}

func (s *homeSnapshot) permissions(name domain.UserName) (domain.PermissionSnapshot, error) {
	user, ok := s.users[name.Normalize()]
	if !ok {
		return domain.PermissionSnapshot{}, domain.ErrUserNotFound
	}

	var snapshot domain.PermissionSnapshot
	for _, role := range s.roles {
		if slices.Contains(role.Users, user.Name) {
			snapshot = snapshot.Merge(role.AgeRestriction, role.Privileged)
		}
	}
	return snapshot, nil
}
