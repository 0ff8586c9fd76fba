package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticer/pkg/descriptor"
	"github.com/matzehuels/noticer/pkg/gather"
)

// inspectCommand shows the fields noticer reads from one descriptor file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pom>",
		Short: "Show the metadata read from a descriptor file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, repaired, err := descriptor.ReadFile(args[0])
			if err != nil {
				return err
			}
			if repaired {
				printWarning("leading bytes before '<' were dropped")
			}
			printRecord(rec)
			return nil
		},
	}
}

func printRecord(rec *descriptor.Record) {
	fmt.Println(StyleTitle.Render(rec.UniqueID()))
	printKeyValue("version", rec.Version)
	printKeyValue("name", gather.NormalizeName(rec.Name))
	printKeyValue("description", gather.NormalizeDescription(rec.Description))
	printKeyValue("website", rec.HomePage)
	printKeyValue("scm", rec.SCM.Link())
	if rec.Organization != nil {
		printKeyValue("organization", rec.Organization.Name)
	}
	if rec.HasParent() {
		printKeyValue("parent", rec.Parent.String())
	}
	for _, l := range rec.Licenses {
		printKeyValue("license", strings.TrimSpace(l.Name+" "+l.URL))
	}
	for _, d := range rec.Developers {
		printKeyValue("developer", d.Name)
	}
}
