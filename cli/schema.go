package cli

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"go.viam.com/rrtplan/config"
)

// SchemaAction prints the JSON schema of map files.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}
