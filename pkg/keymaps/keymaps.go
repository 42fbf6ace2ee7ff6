package keymaps

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyDefinition struct {
	DefaultKey string
	Help       string
}

// Action names are lower case because viper folds config keys.
var KeyDefinitions = map[string]KeyDefinition{
	"showhelp":      {"?", "show/hide commands"},
	"quitapp":       {"q,ctrl+c", "quit"},
	"filtertodos":   {"/", "filter by name"},
	"createtodo":    {"a", "add todo"},
	"completetodo":  {"u", "mark completed"},
	"deletetodo":    {"d", "delete todo"},
	"sortbyname":    {"s", "cycle name sort"},
	"nextpage":      {"n,right", "next page"},
	"prevpage":      {"p,left", "previous page"},
	"togglecolumns": {"c", "show/hide columns"},
	"reload":        {"r", "reload list"},
	"confirm":       {"y,enter", "confirm"},
	"cancel":        {"esc", "cancel"},
}

type KeyMap struct {
	ShowHelp      key.Binding
	QuitApp       key.Binding
	FilterTodos   key.Binding
	CreateTodo    key.Binding
	CompleteTodo  key.Binding
	DeleteTodo    key.Binding
	SortByName    key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	ToggleColumns key.Binding
	Reload        key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
}

func (km *KeyMap) bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"showhelp":      &km.ShowHelp,
		"quitapp":       &km.QuitApp,
		"filtertodos":   &km.FilterTodos,
		"createtodo":    &km.CreateTodo,
		"completetodo":  &km.CompleteTodo,
		"deletetodo":    &km.DeleteTodo,
		"sortbyname":    &km.SortByName,
		"nextpage":      &km.NextPage,
		"prevpage":      &km.PrevPage,
		"togglecolumns": &km.ToggleColumns,
		"reload":        &km.Reload,
		"confirm":       &km.Confirm,
		"cancel":        &km.Cancel,
	}
}

func BuildKeyMap(configOverrides map[string]string) KeyMap {
	km := KeyMap{}
	targets := km.bindings()
	for action, def := range KeyDefinitions {
		keyStr := def.DefaultKey
		if override, exists := configOverrides[strings.ToLower(action)]; exists && override != "" {
			keyStr = override
		}
		if target, ok := targets[action]; ok {
			*target = parseKeyBinding(keyStr, def.DefaultKey, def.Help)
		}
	}
	return km
}

func parseKeyBinding(keyStr, defaultKey, helpText string) key.Binding {
	if strings.TrimSpace(keyStr) == "" {
		keyStr = defaultKey
	}

	// Handle multiple keys separated by commas
	var keys []string
	for _, k := range strings.Split(keyStr, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], helpText),
	)
}

// ShortHelp implements help.KeyMap
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.CreateTodo, km.FilterTodos, km.SortByName, km.ShowHelp, km.QuitApp}
}

// FullHelp implements help.KeyMap
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.CreateTodo, km.CompleteTodo, km.DeleteTodo},
		{km.FilterTodos, km.SortByName, km.ToggleColumns},
		{km.PrevPage, km.NextPage, km.Reload},
		{km.ShowHelp, km.QuitApp},
	}
}

// GetDefaultKeyMappings returns the default key mappings for configuration
func GetDefaultKeyMappings() map[string]string {
	keyMappings := make(map[string]string)
	for action, def := range KeyDefinitions {
		keyMappings[action] = def.DefaultKey
	}
	return keyMappings
}
