package config

import "github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"

type Services struct {
	KVS  KVSConfig  `yaml:"kvstore"`
	Nats NatsConfig `yaml:"nats"`
}

type NatsConfig struct {
	Enabled       bool          `yaml:"enabled"`
	URL           string        `yaml:"url"            validate:"required_if=Enabled true"`
	SubjectPrefix string        `yaml:"subject_prefix" validate:"required_if=Enabled true"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	TLS           NatsTLSConfig `yaml:"tls"`
}

type NatsTLSConfig struct {
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	CACert     string `yaml:"ca_cert"`
}

// KVSConfig configures the result store. An empty type disables persistence.
type KVSConfig struct {
	Type   enum.KVStoreType `yaml:"type"   validate:"omitempty,oneof=badger"`
	Badger BadgerConfig     `yaml:"badger"`
}

type BadgerConfig struct {
	Directory string `yaml:"directory"`
	Prefix    string `yaml:"prefix"`
	InMemory  bool   `yaml:"in_memory"`
}
