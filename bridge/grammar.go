package bridge

import (
	"fmt"
	"strings"
)

// A Grammar is the vocabulary of the command protocol. Commands are case
// sensitive. Prefix commands carry their argument after the prefix.
type Grammar struct {
	Name string

	Ping      string
	Pong      string
	Clear     string
	List      string
	ListStart string
	ListEnd   string

	SetPrefix       string
	AddPrefix       string
	AddStringPrefix string

	ClientsAddPrefix string
	SetBudgetPrefix  string
	VersionGet       string

	// ClientAdded builds the confirmation sent after a client registration.
	ClientAdded func(c *Client) string

	// VersionReply builds the response to VersionGet.
	VersionReply func(version string) string
}

// DefaultGrammar returns the dotted upper case command set.
func DefaultGrammar() Grammar {
	return Grammar{
		Name:             "default",
		Ping:             "PING",
		Pong:             "PONG",
		Clear:            "VARS.CLEAR",
		List:             "VARS.LIST",
		ListStart:        "VARS.LIST.START",
		ListEnd:          "VARS.LIST.END",
		SetPrefix:        "VARS.SET.",
		AddPrefix:        "VARS.ADD.",
		AddStringPrefix:  "VARS.ADDSTRING.",
		ClientsAddPrefix: "CLIENTS.ADD.",
		SetBudgetPrefix:  "CONFIG.MAXVARSPERFRAME.SET.",
		VersionGet:       "VERSION.GET",
		ClientAdded: func(c *Client) string {
			return fmt.Sprintf("CLIENTS.ADD.%s.FINISHED.%d.%d.%d.%d",
				c.Name,
				c.Channels.Data, c.Channels.Command,
				c.Channels.Response, c.Channels.StringData)
		},
		VersionReply: func(version string) string {
			return version
		},
	}
}

// LegacyGrammar returns the command set spoken by existing MobiFlight
// clients.
func LegacyGrammar() Grammar {
	return Grammar{
		Name:             "legacy",
		Ping:             "MF.Ping",
		Pong:             "MF.Pong",
		Clear:            "MF.SimVars.Clear",
		List:             "MF.LVars.List",
		ListStart:        "MF.LVars.List.Start",
		ListEnd:          "MF.LVars.List.End",
		SetPrefix:        "MF.SimVars.Set.",
		AddPrefix:        "MF.SimVars.Add.",
		AddStringPrefix:  "MF.SimVars.AddString.",
		ClientsAddPrefix: "MF.Clients.Add.",
		SetBudgetPrefix:  "MF.Config.MAX_VARS_PER_FRAME.Set.",
		VersionGet:       "MF.Version.Get",
		ClientAdded: func(c *Client) string {
			return "MF.Clients.Add." + c.Name + ".Finished"
		},
		VersionReply: func(version string) string {
			return "MF.Version." + version
		},
	}
}

// GrammarByName returns a built-in grammar.
func GrammarByName(name string) (Grammar, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultGrammar(), nil
	case "legacy", "mobiflight":
		return LegacyGrammar(), nil
	default:
		return Grammar{}, fmt.Errorf("unknown grammar %q", name)
	}
}
