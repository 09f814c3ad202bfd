package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"loan-eligibility-workers/pkg/registry"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the job types served by the worker manager",
	Args:  cobra.NoArgs,
	RunE:  runActivities,
}

func init() {
	rootCmd.AddCommand(activitiesCmd)
}

func runActivities(cmd *cobra.Command, _ []string) error {
	reg := registry.Default()
	if err := reg.Validate(); err != nil {
		return err
	}

	return render(cmd, reg, func(w io.Writer, st styles) {
		fmt.Fprintln(w, st.title.Render("Activities v"+reg.Version))
		cells := make([][]string, 0, len(reg.Activities))
		for _, a := range reg.Activities {
			cells = append(cells, []string{
				a.TaskType, a.Category, a.Timeout, strconv.Itoa(a.Retries), strings.Join(a.ErrorCodes, ", "),
			})
		}
		fmt.Fprintln(w, st.table([]string{"TASK TYPE", "CATEGORY", "TIMEOUT", "RETRIES", "BPMN ERRORS"}, cells))
	})
}
