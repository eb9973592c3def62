package passageproxy

import (
	"strings"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
)

// Help generates the help output listing every environment variable the
// runtime reads. Components used by the hosted functions may be passed in so
// that their settings are listed too.
func Help(components ...interface{}) string {
	components = append([]interface{}{runhttp.NewComponent(), &LambdaComponent{}}, components...)
	groups := make([]settings.Group, 0, len(components))
	for _, c := range components {
		grp, err := settings.GroupFromComponent(c)
		if err != nil {
			continue
		}
		groups = append(groups, grp)
	}
	return settings.ExampleEnvGroups([]settings.Group{&settings.SettingGroup{
		NameValue:   strings.ToUpper(settingsPrefix),
		GroupValues: groups,
	}})
}
