package core

import "time"

const (
	DefaultGlobalWindow    = 60 * time.Second
	DefaultGlobalLimit     = 200
	DefaultRoomWindow      = 60 * time.Second
	DefaultRoomLimit       = 60
	DefaultMaxMessageBytes = 5 * 1024 * 1024
	DefaultRoomCapacity    = 200
	DefaultMessageExpiry   = 600 * time.Second
	DefaultSweepInterval   = time.Second
	DefaultMaxInFlight     = 100
	DefaultMinRoomIDLength = 8
)

// Limits bundles every abuse and retention bound of the relay.
type Limits struct {
	GlobalWindow    time.Duration `mapstructure:"global_window" yaml:"global_window"`
	GlobalLimit     int           `mapstructure:"global_limit" yaml:"global_limit"`
	RoomWindow      time.Duration `mapstructure:"room_window" yaml:"room_window"`
	RoomLimit       int           `mapstructure:"room_limit" yaml:"room_limit"`
	MaxMessageBytes int           `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	RoomCapacity    int           `mapstructure:"room_capacity" yaml:"room_capacity"`
	MessageExpiry   time.Duration `mapstructure:"message_expiry" yaml:"message_expiry"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	MaxInFlight     int           `mapstructure:"max_in_flight" yaml:"max_in_flight"`
	MinRoomIDLength int           `mapstructure:"min_room_id_length" yaml:"min_room_id_length"`
}

// DefaultLimits returns the production bounds.
func DefaultLimits() Limits {
	return Limits{
		GlobalWindow:    DefaultGlobalWindow,
		GlobalLimit:     DefaultGlobalLimit,
		RoomWindow:      DefaultRoomWindow,
		RoomLimit:       DefaultRoomLimit,
		MaxMessageBytes: DefaultMaxMessageBytes,
		RoomCapacity:    DefaultRoomCapacity,
		MessageExpiry:   DefaultMessageExpiry,
		SweepInterval:   DefaultSweepInterval,
		MaxInFlight:     DefaultMaxInFlight,
		MinRoomIDLength: DefaultMinRoomIDLength,
	}
}

// withDefaults fills zero fields so a partially specified config stays usable.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.GlobalWindow <= 0 {
		l.GlobalWindow = d.GlobalWindow
	}
	if l.GlobalLimit <= 0 {
		l.GlobalLimit = d.GlobalLimit
	}
	if l.RoomWindow <= 0 {
		l.RoomWindow = d.RoomWindow
	}
	if l.RoomLimit <= 0 {
		l.RoomLimit = d.RoomLimit
	}
	if l.MaxMessageBytes <= 0 {
		l.MaxMessageBytes = d.MaxMessageBytes
	}
	if l.RoomCapacity <= 0 {
		l.RoomCapacity = d.RoomCapacity
	}
	if l.MessageExpiry <= 0 {
		l.MessageExpiry = d.MessageExpiry
	}
	if l.SweepInterval <= 0 {
		l.SweepInterval = d.SweepInterval
	}
	if l.MaxInFlight <= 0 {
		l.MaxInFlight = d.MaxInFlight
	}
	if l.MinRoomIDLength <= 0 {
		l.MinRoomIDLength = d.MinRoomIDLength
	}
	return l
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
