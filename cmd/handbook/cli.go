package main

import (
	"context"
	"io"
)

// Dependencies holds the I/O and environment shared by every command.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Serve the handbook web interface"`
	Check CheckCmd `cmd:"" help:"Load a catalog and list rows that need attention"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string `default:":8080" env:"HANDBOOK_ADDR" help:"Listen address"`
	Catalog   string `required:"" type:"path" env:"HANDBOOK_CATALOG" help:"Catalog CSV file"`
	Secrets   string `default:".streamlit/secrets.toml" env:"HANDBOOK_SECRETS" help:"TOML file holding the SendGrid settings"`
	Home      string `type:"path" env:"HANDBOOK_HOME" help:"TOML file overriding the built-in home page content"`
	ViewerURL string `name:"viewer-url" default:"https://docs.google.com/viewer" help:"Document viewer used for PDF entries"`
	AppName   string `name:"app-name" default:"Handbook" help:"Name shown in the page title and report subjects"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Catalog string `arg:"" type:"existingfile" help:"Catalog CSV file"`
}
