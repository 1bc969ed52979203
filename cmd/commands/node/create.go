package node

import (
	"fmt"
	"os"
	"path"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/util"

	"github.com/spf13/cobra"
)

// maxPersonalityFiles is the number of files the API accepts per build.
const maxPersonalityFiles = 5

// CreateCommand returns a cobra.Command that provisions a node.
func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new node",
		Long: `Create a new node from an image and a flavor.

The root password is only returned once, in the create response, and is
printed with the node details. Use 'rscloud catalog all' to find image and
size IDs.

Examples:
  rscloud node create --name web-1 --image 112 --size 1
  rscloud node create --name web-1 --image 112 --size 2 \
      --meta role=web --file /etc/motd=./motd --wait`,
		Args:         cobra.NoArgs,
		RunE:         runCreate,
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmd.Flags().String("name", "", "Node name (required)")
	cmd.Flags().String("image", "", "Image ID (required)")
	cmd.Flags().String("size", "", "Size (flavor) ID (required)")
	cmd.Flags().StringToString("meta", nil, "Metadata key=value pairs")
	cmd.Flags().StringArray("file", nil, "Inject a file: /remote/path=./local/path (repeatable)")
	cmd.Flags().String("shared-ip-group-id", "", "Place the node in this shared IP group")
	cmd.Flags().String("shared-ip-group", "", "Shared IP group name")
	cmd.Flags().Bool("wait", false, "Wait until the node is RUNNING")
	cmdutil.AddOutputFlag(cmd)

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.Flags().MarkDeprecated("shared-ip-group", "it was never honoured by the API; pass the group ID with --shared-ip-group-id")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	opts, err := buildCreateOpts(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	cmdutil.TagNode(cmd, "", opts.Name)
	fmt.Fprintf(cmd.ErrOrStderr(), "Creating node %q...\n", opts.Name)

	node, err := provider.CreateNode(cmd.Context(), opts)
	if err != nil {
		return err
	}
	cmdutil.TagNode(cmd, node.ID, node.Name)

	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		if err := waitForState(cmd, provider, node.ID, domain.NodeStateRunning); err != nil {
			return err
		}
		node.State = domain.NodeStateRunning
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), node)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Node %q created (ID: %s).\n\n", node.Name, node.ID)
	printNodeDetail(cmd.OutOrStdout(), node)
	return nil
}

func buildCreateOpts(cmd *cobra.Command) (domain.CreateNodeOpts, error) {
	name, _ := cmd.Flags().GetString("name")
	imageID, _ := cmd.Flags().GetString("image")
	sizeID, _ := cmd.Flags().GetString("size")
	meta, _ := cmd.Flags().GetStringToString("meta")
	fileSpecs, _ := cmd.Flags().GetStringArray("file")
	groupID, _ := cmd.Flags().GetString("shared-ip-group-id")

	name = strings.TrimSpace(name)
	if err := util.ValidateNodeName(name); err != nil {
		return domain.CreateNodeOpts{}, err
	}

	if cmd.Flags().Changed("shared-ip-group") {
		group, _ := cmd.Flags().GetString("shared-ip-group")
		logger.Ctx(cmd.Context()).Warn().
			Str("shared_ip_group", group).
			Msg("--shared-ip-group is ignored; use --shared-ip-group-id")
	}

	files, err := readPersonality(fileSpecs)
	if err != nil {
		return domain.CreateNodeOpts{}, err
	}

	return domain.CreateNodeOpts{
		Name:            name,
		ImageID:         strings.TrimSpace(imageID),
		SizeID:          strings.TrimSpace(sizeID),
		Metadata:        meta,
		Files:           files,
		SharedIPGroupID: strings.TrimSpace(groupID),
	}, nil
}

// readPersonality parses "/remote=./local" specs and loads each local file.
func readPersonality(specs []string) (map[string][]byte, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	if len(specs) > maxPersonalityFiles {
		return nil, fmt.Errorf("at most %d files can be injected, got %d", maxPersonalityFiles, len(specs))
	}

	files := make(map[string][]byte, len(specs))
	for _, spec := range specs {
		remote, local, ok := strings.Cut(spec, "=")
		if !ok || remote == "" || local == "" {
			return nil, fmt.Errorf("invalid --file %q: expected /remote/path=./local/path", spec)
		}
		if !path.IsAbs(remote) {
			return nil, fmt.Errorf("invalid --file %q: remote path must be absolute", spec)
		}
		data, err := os.ReadFile(local)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", local, err)
		}
		files[remote] = data
	}
	return files, nil
}
