package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aidar/teamhub/internal/authz"
)

// teamCmd groups the team subcommands
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Work with teams",
}

// teamListCmd prints the teams the current user belongs to
var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		teams, err := rt.teams.ListTeams(cmd.Context())
		if err != nil {
			return err
		}
		if len(teams) == 0 {
			fmt.Println("No teams yet. Create one with 'teamctl team create NAME'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCREATED")
		for _, team := range teams {
			fmt.Fprintf(w, "%d\t%s\t%s\n", team.ID, team.Name, team.CreatedAt.Local().Format("2006-01-02"))
		}
		return w.Flush()
	},
}

// teamCreateCmd creates a team and re-lists to show the server-assigned record
var teamCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a team (you become its admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		if err := rt.teams.CreateTeam(cmd.Context(), args[0]); err != nil {
			return err
		}

		// Создание не возвращает состояние, поэтому перечитываем список
		teams, err := rt.teams.ListTeams(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Team created. You now belong to %d team(s).\n", len(teams))
		return nil
	},
}

// teamShowCmd prints one team with its member table and the caller's role
var teamShowCmd = &cobra.Command{
	Use:   "show TEAM_ID",
	Short: "Show a team and its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		detail, err := rt.teams.LoadTeamDetail(cmd.Context(), teamID)
		if err != nil {
			return err
		}

		user, _ := rt.session.CurrentUser()

		fmt.Printf("Team: %s (id %d)\n", detail.Team.Name, detail.Team.ID)
		if role, ok := authz.EffectiveRole(detail.Members, user.ID); ok {
			fmt.Printf("Your role: %s\n", role)
		} else {
			fmt.Println("Your role: unknown")
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USER ID\tEMAIL\tROLE\tJOINED")
		for _, member := range detail.Members {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				member.UserID, member.Email, member.Role, member.JoinedAt.Local().Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if authz.IsAdmin(detail.Members, user.ID) {
			fmt.Println("\nYou administer this team: 'teamctl member add|set-role|remove'.")
		}
		return nil
	},
}

func init() {
	teamCmd.AddCommand(teamListCmd, teamCreateCmd, teamShowCmd)
	rootCmd.AddCommand(teamCmd)
}
