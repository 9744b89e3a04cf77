package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-agro-keeper/internal/adapter"
	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

// Usage lists the commands understood by [App.Run].
const Usage = `usage: client [-a address] [-t token] [-timeout duration] <command> [args]

commands:
  version
  register <name> <email> <password>
  login <email> <password>
  logout
  profile
  profile update [name=<v>] [email=<v>] [password=<v>]
  fields list
  fields get <id>
  fields sensors <id>
  fields create <name>
  fields update <id> <name>
  fields delete <id>
  sensors list
  sensors get <id>
  sensors create <field_id> <name> <lat> <lng> <status>
  sensors update <id> <name> [lat=<v>] [lng=<v>] [status=<v>] [field_id=<v>]
  sensors delete <id>`

type App struct {
	api adapter.APIAdapter
	out io.Writer

	logger *logger.Logger
}

func NewApp(api adapter.APIAdapter, out io.Writer, logger *logger.Logger) *App {
	return &App{api: api, out: out, logger: logger}
}

// Run executes one command. args[0] is the command word.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	command, rest := args[0], args[1:]
	a.logger.Debug().Str("command", command).Msg("running client command")

	switch command {
	case "version":
		version, err := a.api.Version(ctx)
		if err != nil {
			return err
		}
		return a.print(version)
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		if err := a.api.Logout(ctx); err != nil {
			return err
		}
		return a.print("You are logged out")
	case "profile":
		return a.profile(ctx, rest)
	case "fields":
		return a.fields(ctx, rest)
	case "sensors":
		return a.sensors(ctx, rest)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: register <name> <email> <password>", ErrUsage)
	}

	token, err := a.api.Register(ctx, models.RegisterRequest{
		Name:                 args[0],
		Email:                args[1],
		Password:             args[2],
		PasswordConfirmation: args[2],
	})
	if err != nil {
		return err
	}
	return a.print(models.TokenResponse{Token: token})
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <email> <password>", ErrUsage)
	}

	token, err := a.api.Login(ctx, models.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	return a.print(models.TokenResponse{Token: token})
}

func (a *App) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		user, err := a.api.Profile(ctx)
		if err != nil {
			return err
		}
		return a.print(models.UserPayload{User: user})
	}

	if args[0] != "update" {
		return fmt.Errorf("%w: profile %q", ErrUnknownCommand, args[0])
	}

	options, err := parseOptions(args[1:], "name", "email", "password")
	if err != nil {
		return err
	}

	var req models.ProfileUpdateRequest
	if v, ok := options["name"]; ok {
		req.Name = &v
	}
	if v, ok := options["email"]; ok {
		req.Email = &v
	}
	if v, ok := options["password"]; ok {
		req.Password = &v
		req.PasswordConfirmation = &v
	}

	user, err := a.api.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	return a.print(models.UserPayload{User: user})
}

func (a *App) fields(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: fields <list|get|sensors|create|update|delete>", ErrUsage)
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		fields, err := a.api.ListFields(ctx)
		if err != nil {
			return err
		}
		return a.print(models.FieldsPayload{Fields: fields})
	case "get":
		id, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		field, err := a.api.GetField(ctx, id)
		if err != nil {
			return err
		}
		return a.print(models.FieldPayload{Field: field})
	case "sensors":
		id, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		field, err := a.api.GetFieldWithSensors(ctx, id)
		if err != nil {
			return err
		}
		return a.print(models.FieldWithSensorsPayload{Field: field})
	case "create":
		if len(rest) != 1 {
			return fmt.Errorf("%w: fields create <name>", ErrUsage)
		}
		field, err := a.api.CreateField(ctx, models.FieldRequest{Name: rest[0]})
		if err != nil {
			return err
		}
		return a.print(models.FieldPayload{Field: field})
	case "update":
		id, err := idArg(rest, 2)
		if err != nil {
			return err
		}
		field, err := a.api.UpdateField(ctx, id, models.FieldRequest{Name: rest[1]})
		if err != nil {
			return err
		}
		return a.print(models.FieldPayload{Field: field})
	case "delete":
		id, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		if err = a.api.DeleteField(ctx, id); err != nil {
			return err
		}
		return a.print("Record deleted.")
	default:
		return fmt.Errorf("%w: fields %q", ErrUnknownCommand, sub)
	}
}

func (a *App) sensors(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: sensors <list|get|create|update|delete>", ErrUsage)
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		sensors, err := a.api.ListSensors(ctx)
		if err != nil {
			return err
		}
		return a.print(models.SensorsPayload{Sensors: sensors})
	case "get":
		id, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		sensor, err := a.api.GetSensor(ctx, id)
		if err != nil {
			return err
		}
		return a.print(models.SensorPayload{Sensor: sensor})
	case "create":
		req, err := sensorCreateRequest(rest)
		if err != nil {
			return err
		}
		sensor, err := a.api.CreateSensor(ctx, req)
		if err != nil {
			return err
		}
		return a.print(models.SensorPayload{Sensor: sensor})
	case "update":
		if len(rest) < 2 {
			return fmt.Errorf("%w: sensors update <id> <name> [key=value...]", ErrUsage)
		}
		id, err := idArg(rest[:1], 1)
		if err != nil {
			return err
		}
		req, err := sensorUpdateRequest(rest[1], rest[2:])
		if err != nil {
			return err
		}
		sensor, err := a.api.UpdateSensor(ctx, id, req)
		if err != nil {
			return err
		}
		return a.print(models.SensorPayload{Sensor: sensor})
	case "delete":
		id, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		if err = a.api.DeleteSensor(ctx, id); err != nil {
			return err
		}
		return a.print("Record deleted.")
	default:
		return fmt.Errorf("%w: sensors %q", ErrUnknownCommand, sub)
	}
}

func sensorCreateRequest(args []string) (models.SensorCreateRequest, error) {
	if len(args) != 5 {
		return models.SensorCreateRequest{}, fmt.Errorf("%w: sensors create <field_id> <name> <lat> <lng> <status>", ErrUsage)
	}

	fieldID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return models.SensorCreateRequest{}, fmt.Errorf("%w: field_id %q", ErrUsage, args[0])
	}
	lat, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return models.SensorCreateRequest{}, fmt.Errorf("%w: lat %q", ErrUsage, args[2])
	}
	lng, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return models.SensorCreateRequest{}, fmt.Errorf("%w: lng %q", ErrUsage, args[3])
	}

	return models.SensorCreateRequest{
		Name:    args[1],
		Lat:     &lat,
		Lng:     &lng,
		Status:  args[4],
		FieldID: &fieldID,
	}, nil
}

func sensorUpdateRequest(name string, args []string) (models.SensorUpdateRequest, error) {
	req := models.SensorUpdateRequest{Name: name}

	options, err := parseOptions(args, "lat", "lng", "status", "field_id")
	if err != nil {
		return req, err
	}

	for key, value := range options {
		switch key {
		case "lat", "lng":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("%w: %s %q", ErrUsage, key, value)
			}
			if key == "lat" {
				req.Lat = &f
			} else {
				req.Lng = &f
			}
		case "status":
			req.Status = &value
		case "field_id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return req, fmt.Errorf("%w: field_id %q", ErrUsage, value)
			}
			req.FieldID = &id
		}
	}

	return req, nil
}

// parseOptions reads key=value arguments restricted to allowed keys.
func parseOptions(args []string, allowed ...string) (map[string]string, error) {
	options := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, arg)
		}
		options[key] = value
	}
	return options, nil
}

// idArg parses args[0] as an id and checks that exactly n arguments are given.
func idArg(args []string, n int) (int64, error) {
	if len(args) != n {
		return 0, fmt.Errorf("%w: expected %d argument(s)", ErrUsage, n)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, args[0])
	}
	return id, nil
}

func (a *App) print(v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(a.out, s)
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
