// Job commands: create, update, delete, get, and list career job postings.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/certbook/internal/hostenv"
	"github.com/mesh-intelligence/certbook/pkg/registry"
	"github.com/mesh-intelligence/certbook/pkg/types"
)

var (
	jobMetadataJSON string
	jobListOwner    string
	jobListFrom     int
	jobListLimit    int
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
}

var jobAddCmd = &cobra.Command{
	Use:   "add <job-id>",
	Short: "Create a new job posting",
	Long: `Add registers a new job posting owned by the caller.

The job id is caller-chosen and must be unused. Metadata is supplied as a
JSON object; issued_at and updated_at are stamped by the registry.

Example:
  certbook job add backend-eng-2026 --metadata '{"extra":"Backend engineer"}'
  certbook job add site-reliability --deposit 500 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runJobAdd,
}

var jobSetCmd = &cobra.Command{
	Use:   "set <job-id>",
	Short: "Update a job posting's metadata",
	Long: `Set overwrites the caller-mutable metadata fields of an existing job.
Only the job owner may update.

Example:
  certbook job set backend-eng-2026 --metadata '{"extra":"Senior backend engineer"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runJobSet,
}

var jobRmCmd = &cobra.Command{
	Use:   "rm <job-id>",
	Short: "Delete a job posting",
	Long: `Rm removes a job posting and refunds its storage value to the caller.
Only the job owner may delete. The attached deposit must be exactly 1.

Example:
  certbook job rm backend-eng-2026`,
	Args: cobra.ExactArgs(1),
	RunE: runJobRm,
}

var jobGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Show one job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobGet,
}

var jobLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List job postings for an owner",
	Long: `Ls enumerates an owner's job postings in stable index order.

Example:
  certbook job ls --owner alice
  certbook job ls --owner alice --from 50 --limit 50`,
	RunE: runJobLs,
}

func init() {
	jobAddCmd.Flags().StringVar(&jobMetadataJSON, "metadata", "", "job metadata as a JSON object")
	jobSetCmd.Flags().StringVar(&jobMetadataJSON, "metadata", "", "job metadata as a JSON object")

	jobLsCmd.Flags().StringVar(&jobListOwner, "owner", "", "owner account to list jobs for (required)")
	jobLsCmd.Flags().IntVar(&jobListFrom, "from", 0, "number of entries to skip")
	jobLsCmd.Flags().IntVar(&jobListLimit, "limit", 0, "maximum entries to return (default 50)")
	_ = jobLsCmd.MarkFlagRequired("owner")

	jobCmd.AddCommand(jobAddCmd)
	jobCmd.AddCommand(jobSetCmd)
	jobCmd.AddCommand(jobRmCmd)
	jobCmd.AddCommand(jobGetCmd)
	jobCmd.AddCommand(jobLsCmd)
}

func runJobAdd(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	var meta types.JobMetadata
	if err := parseMetadataFlag(jobMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.JobCreate(env, jobID, meta); err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		if flagJSON {
			return printJSON(reg.JobInfo(jobID))
		}
		fmt.Printf("Created job: %s\n", jobID)
		return nil
	})
}

func runJobSet(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	var meta types.JobMetadata
	if err := parseMetadataFlag(jobMetadataJSON, &meta); err != nil {
		return err
	}

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.JobUpdate(env, jobID, meta); err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		if flagJSON {
			return printJSON(reg.JobInfo(jobID))
		}
		fmt.Printf("Updated job: %s\n", jobID)
		return nil
	})
}

func runJobRm(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	return runMutation(func(reg *registry.Registry, env *hostenv.Local) error {
		if err := reg.JobDelete(env, jobID); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		if flagJSON {
			fmt.Printf("{\"job_id\": %q}\n", jobID)
		} else {
			fmt.Printf("Deleted job: %s\n", jobID)
		}
		return nil
	})
}

func runJobGet(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	return runQuery(func(reg *registry.Registry) error {
		view := reg.JobInfo(jobID)
		if view == nil {
			return fmt.Errorf("job %q: %w", jobID, types.ErrNotFound)
		}
		if flagJSON {
			return printJSON(view)
		}
		fmt.Printf("Job:   %s\nOwner: %s\n", view.JobID, view.OwnerID)
		return nil
	})
}

func runJobLs(cmd *cobra.Command, args []string) error {
	return runQuery(func(reg *registry.Registry) error {
		views := reg.JobsForOwner(jobListOwner, jobListFrom, jobListLimit)
		if flagJSON {
			return printJSON(views)
		}
		for _, v := range views {
			fmt.Println(v.JobID)
		}
		return nil
	})
}
