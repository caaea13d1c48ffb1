package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssabab/cmd/ssabab/ui"
)

// friendsCmd lists friends; subcommands add and remove
var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Manage your friends list",
	Long: `List, add, or remove friends.

Friends make the monthly analytics more fun - you can compare tastes.`,
	RunE: runFriendsList,
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a friend by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runFriendsAdd,
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a friend by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runFriendsRemove,
}

func runFriendsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	resp, err := a.client.Friends(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load friends: %w", err)
	}

	if len(resp.Friends) == 0 {
		fmt.Println("No friends yet. Add one with 'ssabab friends add <name>'.")
		return nil
	}

	tbl := ui.NewSimpleTable(fmt.Sprintf("Friends (%d)", len(resp.Friends)), []string{"Name"})
	for _, f := range resp.Friends {
		tbl.AddRow(f.FriendName)
	}
	fmt.Print(tbl.View(a.styles()))
	return nil
}

func runFriendsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	name := args[0]
	if err := a.client.AddFriend(cmd.Context(), name); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	fmt.Printf("Added %s.\n", name)
	return nil
}

func runFriendsRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	name := args[0]
	if err := a.client.RemoveFriend(cmd.Context(), name); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	fmt.Printf("Removed %s.\n", name)
	return nil
}
