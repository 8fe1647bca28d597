// Package add provides the runner for logging hours or starting a new
// calendar grouping.
package add

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/punch/pkg/app"
	"tableflip.dev/punch/pkg/entry"
	"tableflip.dev/punch/pkg/printers"
	"tableflip.dev/punch/pkg/timesheet"
)

const newTaskLabel = "+ new task"

// Add logs hours for a date, creating the entry remotely. With EmptyRow it
// only creates a local placeholder grouping to start data entry.
type Add struct {
	Date        time.Time
	Project     string
	Team        string
	Task        string
	Description string
	Hours       float64
	Billable    entry.BillableType
	EmptyRow    bool
	Interactive bool
	Service     *app.Service
}

// Do validates the grouping (prompting for a task when interactive) and
// performs the add.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if n.Project == "" && n.Team == "" {
		return errors.New("a project or team is required")
	}
	if n.Task == "" && n.Interactive {
		task, err := n.pickTask(ctx)
		if err != nil {
			return err
		}
		n.Task = task
	}
	if n.Task == "" {
		return errors.New("a task is required")
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	if n.EmptyRow {
		row := n.Service.AddRow(n.Project, n.Team, n.Task, n.Billable)
		pp.Result("added row %s / %s", row.GroupRef(), row.Task)
		return nil
	}

	e, err := n.Service.NewEntry(ctx, n.Date, n.Project, n.Team, n.Task, n.Hours)
	if err != nil {
		return err
	}
	if n.Description != "" || n.Billable == entry.NonBillable {
		if err := n.Service.StageEdit(ctx, e.ID, patchFor(n.Description, n.Billable)); err != nil {
			return err
		}
	}
	pp.Entries(e)
	return n.Service.Close(ctx)
}

func patchFor(description string, billable entry.BillableType) timesheet.Patch {
	var p timesheet.Patch
	if description != "" {
		p.Description = &description
	}
	if billable != "" {
		p.Billable = &billable
	}
	return p
}

// pickTask offers the tasks the server knows for the grouping, plus the
// option to create a new one.
func (n *Add) pickTask(ctx context.Context) (string, error) {
	group := n.Team
	if group == "" {
		group = n.Project
	}
	tasks, err := n.Service.Tasks(ctx, group)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(tasks)+1)
	for _, t := range tasks {
		items = append(items, t.Name)
	}
	items = append(items, newTaskLabel)

	sel := promptui.Select{
		Label: fmt.Sprintf("Task for %s", group),
		Items: items,
	}
	_, picked, err := sel.Run()
	if err != nil {
		return "", err
	}
	if picked != newTaskLabel {
		return picked, nil
	}

	prompt := promptui.Prompt{Label: "New task name"}
	name, err := prompt.Run()
	if err != nil {
		return "", err
	}
	task, err := n.Service.CreateTask(ctx, group, name)
	if err != nil {
		return "", err
	}
	return task.Name, nil
}
