package prepare

// defaultClusterColors maps the cluster keys the registry emits to their
// display colors. Values are 7-character hex strings (leading '#').
var defaultClusterColors = map[string]string{
	"modules.home":                 "#1976d2",
	"modules.nixos":                "#7b1fa2",
	"outputs.nixosConfigurations":  "#e65100",
	"outputs.homeConfigurations":   "#2e7d32",
	"outputs.perSystem":            "#757575",
	"hosts.server":                 "#c62828",
	"hosts.vm":                     "#c62828",
	"hosts.workstation":            "#c62828",
	"users.alice":                  "#00838f",
	"flake":                        "#455a64",
	"flake.inputs":                 "#78909c",
}

// DefaultClusterColors returns a fresh copy of the built-in cluster color
// map. Callers may mutate the copy freely.
func DefaultClusterColors() map[string]string {
	out := make(map[string]string, len(defaultClusterColors))
	for k, v := range defaultClusterColors {
		out[k] = v
	}
	return out
}

// ClusterColors merges overrides on top of the default map. Override wins
// on key collision; keys only present in overrides are added. A nil or
// empty override map yields the defaults unchanged.
func ClusterColors(overrides map[string]string) map[string]string {
	out := DefaultClusterColors()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
