package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aidar/teamhub/internal/domain"
)

// memberCmd groups the membership subcommands
var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage team members (admin only)",
}

// memberAddCmd adds a user to a team by email
var memberAddCmd = &cobra.Command{
	Use:   "add TEAM_ID EMAIL",
	Short: "Add a user to a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}

		roleFlag, _ := cmd.Flags().GetString("role")
		role, err := domain.ParseRole(roleFlag)
		if err != nil {
			return fmt.Errorf("invalid role %q (admin, member or viewer)", roleFlag)
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		detail, err := rt.teams.AddMember(cmd.Context(), teamID, args[1], role)
		if err != nil {
			return err
		}

		fmt.Printf("Added %s as %s. Team now has %d member(s).\n", args[1], role, len(detail.Members))
		return nil
	},
}

// memberSetRoleCmd changes another member's role
var memberSetRoleCmd = &cobra.Command{
	Use:   "set-role TEAM_ID USER_ID ROLE",
	Short: "Change a member's role",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		role, err := domain.ParseRole(args[2])
		if err != nil {
			return fmt.Errorf("invalid role %q (admin, member or viewer)", args[2])
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		detail, err := rt.teams.ChangeRole(cmd.Context(), teamID, userID, role)
		if err != nil {
			return err
		}

		if member, ok := domain.MemberOf(detail.Members, userID); ok {
			fmt.Printf("%s is now %s.\n", member.Email, member.Role)
		}
		return nil
	},
}

// memberRemoveCmd removes a member after an explicit confirmation
var memberRemoveCmd = &cobra.Command{
	Use:   "remove TEAM_ID USER_ID",
	Short: "Remove a member from a team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		assumeYes, _ := cmd.Flags().GetBool("yes")

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		// Показываем кого именно удаляем перед подтверждением
		detail, err := rt.teams.LoadTeamDetail(cmd.Context(), teamID)
		if err != nil {
			return err
		}
		member, ok := domain.MemberOf(detail.Members, userID)
		if !ok {
			return fmt.Errorf("user %d is not a member of team %d", userID, teamID)
		}

		confirm := func() bool {
			if assumeYes {
				return true
			}
			var confirmed bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Remove %s from %q?", member.Email, detail.Team.Name)).
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				return false
			}
			return confirmed
		}

		detail, err = rt.teams.RemoveMember(cmd.Context(), teamID, userID, confirm)
		if err != nil {
			return err
		}

		fmt.Printf("Removed %s. Team now has %d member(s).\n", member.Email, len(detail.Members))
		return nil
	},
}

func init() {
	memberAddCmd.Flags().String("role", string(domain.RoleMember), "role for the new member")
	memberRemoveCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	memberCmd.AddCommand(memberAddCmd, memberSetRoleCmd, memberRemoveCmd)
	rootCmd.AddCommand(memberCmd)
}
