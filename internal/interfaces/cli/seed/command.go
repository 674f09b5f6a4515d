package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tracker/internal/application/user/usecases"
	"tracker/internal/infrastructure/auth"
	"tracker/internal/infrastructure/repository"
	"tracker/internal/interfaces/cli/common"
	"tracker/internal/shared/biztime"
	"tracker/internal/shared/db"
)

var (
	env        string
	configPath string
	usersFile  string
)

// UsersFile is the layout of the --file document.
type UsersFile struct {
	Users []usecases.ProvisionUser `yaml:"users"`
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or update users from a YAML file",
		Long: `Provision the user directory from a YAML file. Users are matched by
username; existing users get their profile and role updated, and their
password only when one is given.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&usersFile, "file", "f", "configs/users.yaml", "Path to the users YAML file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	entries, err := LoadUsersFile(usersFile)
	if err != nil {
		return err
	}

	rt, err := common.Setup(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	uc := usecases.NewProvisionUsersUseCase(
		repository.NewUserRepository(rt.DB),
		auth.NewBcryptPasswordHasher(rt.Config.Auth.Password.BcryptCost),
		db.NewTransactionManager(rt.DB),
		biztime.SystemClock{},
		rt.Log,
	)

	result, err := uc.Execute(cmd.Context(), entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "users created: %d, updated: %d\n", result.Created, result.Updated)
	return nil
}

// LoadUsersFile parses a users document. An empty list is an error.
func LoadUsersFile(path string) ([]usecases.ProvisionUser, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var doc UsersFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	if len(doc.Users) == 0 {
		return nil, fmt.Errorf("users file %s lists no users", path)
	}
	return doc.Users, nil
}
