package utils

import "github.com/bwmarrin/discordgo"

type OptionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// Options indexes interaction options by name.
func Options(options []*discordgo.ApplicationCommandInteractionDataOption) OptionMap {
	optionMap := make(OptionMap, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}
	return optionMap
}

// SubCommand returns the invoked subcommand and its options.
func SubCommand(data discordgo.ApplicationCommandInteractionData) (string, OptionMap) {
	if len(data.Options) == 0 || data.Options[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", Options(data.Options)
	}
	sub := data.Options[0]
	return sub.Name, Options(sub.Options)
}

func (m OptionMap) String(name string) string {
	if opt, ok := m[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Bool returns nil when the option was not supplied.
func (m OptionMap) Bool(name string) *bool {
	if opt, ok := m[name]; ok {
		v := opt.BoolValue()
		return &v
	}
	return nil
}

func (m OptionMap) Int(name string) (int64, bool) {
	if opt, ok := m[name]; ok {
		return opt.IntValue(), true
	}
	return 0, false
}

// ID returns the raw snowflake of a user, role or channel option.
func (m OptionMap) ID(name string) string {
	if opt, ok := m[name]; ok {
		if id, ok := opt.Value.(string); ok {
			return id
		}
	}
	return ""
}
