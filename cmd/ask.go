package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the concierge a question",
	Long:  `Answers a guest question from the knowledge base. With --guest the answer is personalized and recorded in the guest's history.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("guest", "", "guest name to personalize the answer for")
	askCmd.Flags().Bool("context", false, "print the retrieved context instead of an answer")
	askCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

	guest, _ := cmd.Flags().GetString("guest")
	contextOnly, _ := cmd.Flags().GetBool("context")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if contextOnly {
		rc := a.engine.RetrieveContext(ctx, question, guest)
		if jsonOutput {
			return writeJSON(rc)
		}
		if len(rc.RelevantInfo) == 0 {
			fmt.Println("No knowledge entries matched.")
			return nil
		}
		for i, se := range rc.RelevantInfo {
			fmt.Printf("%d. [%.2f] %s (%s)\n", i+1, se.Score, se.Topic, se.Category)
		}
		return nil
	}

	ans := a.engine.GenerateAnswer(ctx, question, guest)
	if jsonOutput {
		return writeJSON(ans)
	}

	fmt.Println(ans.Answer)
	fmt.Println()
	fmt.Printf("Confidence: %.2f", ans.Confidence)
	if ans.Enhanced {
		fmt.Printf(" (enhanced by %s)", ans.ModelUsed)
	}
	fmt.Println()
	if len(ans.Sources) > 0 {
		fmt.Printf("Sources: %s\n", strings.Join(ans.Sources, ", "))
	}
	if len(ans.Suggestions) > 0 {
		fmt.Println("You might also ask:")
		for _, s := range ans.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
