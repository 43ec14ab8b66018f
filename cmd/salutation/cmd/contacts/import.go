package contacts

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

// NewImportCommand creates the contacts import command.
func NewImportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create contacts from a YAML or JSON file",
		Long: `Import creates one contact per entry of a YAML (or JSON) list, in
order. Entries use the API field names: category, name, locale, title,
name_given, name_family and name_salutation. Use - to read standard input.

Creation stops at the first invalid entry; entries before it are kept.`,
		Example: `  salutation contacts import contacts.yaml

  # contacts.yaml
  - category: person
    name: Ada Lovelace
  - category: person
    name: Kim Minjun
    locale: ko_KR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := readChanges(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			svc, err := app.Service(cmd.Context())
			if err != nil {
				return err
			}

			created, err := svc.CreateMany(cmd.Context(), ins)
			if len(created) > 0 {
				app.Logger().Info().Int("count", len(created)).Str("file", args[0]).Msg("Imported contacts")
				if printErr := printContacts(cmd.OutOrStdout(), app, created); printErr != nil {
					return printErr
				}
			}
			if err != nil {
				return fmt.Errorf("imported %d of %d contacts: %w", len(created), len(ins), err)
			}
			return nil
		},
	}
}

// readChanges parses the import file. Category aliases are resolved here so
// "company" imports as an organization.
func readChanges(stdin io.Reader, path string) ([]contacts.Changes, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 - user supplied import file
	}
	if err != nil {
		return nil, errors.WrapResource("read", "file", path, err)
	}

	var ins []contacts.Changes
	if err := yaml.UnmarshalWithOptions(data, &ins, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if len(ins) == 0 {
		return nil, errors.NewValidationError("file", path, "contains no contacts")
	}

	for i := range ins {
		if ins[i].Category == nil {
			continue
		}
		cat, err := contacts.ParseCategory(ins[i].Category.String())
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		ins[i].Category = &cat
	}

	return ins, nil
}
