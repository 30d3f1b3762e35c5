package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/thelolagemann/sm83/internal/cartridge"
	"github.com/thelolagemann/sm83/internal/config"
	"github.com/thelolagemann/sm83/internal/gameboy"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sm83",
		Short:         "Run Game Boy cartridge images on the SM83 CPU core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(runCommand(), headerCommand())

	if err := rootCmd.Execute(); err != nil {
		log.New(false).Fatal(err.Error())
	}
}

func runCommand() *cobra.Command {
	var (
		romFile        string
		configFile     string
		steps          int
		romOnly        bool
		breakOnIllegal bool
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a cartridge until it halts, fails or reaches the step limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				var err error
				if cfg, err = config.Load(configFile); err != nil {
					return err
				}
			}

			// flags override the config file
			flags := cmd.Flags()
			if flags.Changed("rom") {
				cfg.ROM = romFile
			}
			if flags.Changed("steps") {
				cfg.MaxSteps = steps
			}
			if flags.Changed("rom-only") {
				cfg.ROMOnly = romOnly
			}
			if flags.Changed("break-on-illegal") {
				cfg.BreakOnIllegal = breakOnIllegal
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.ROM == "" {
				return fmt.Errorf("no rom given, use --rom or the rom field of the config file")
			}

			logger := log.New(cfg.Debug())
			rom, err := utils.LoadFile(cfg.ROM)
			if err != nil {
				return err
			}

			opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.WithInterrupts()}
			if cfg.ROMOnly {
				opts = append(opts, gameboy.WithROMOnlyBus())
			}
			if cfg.BreakOnIllegal {
				opts = append(opts, gameboy.WithBreakOnIllegal())
			}
			gb, err := gameboy.New(rom, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			stats, runErr := gb.Run(ctx, cfg.MaxSteps)
			fmt.Printf("stopped:      %s\n", stats.Reason)
			fmt.Printf("steps:        %d\n", stats.Steps)
			fmt.Printf("cycles:       %d\n", stats.Cycles)
			fmt.Printf("registers:    %s\n", gb.CPU)
			fmt.Printf("digest:       %016x\n", gb.Digest())
			if stats.Illegal != nil {
				fmt.Printf("breakpoint:   %s\n", stats.Illegal)
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&romFile, "rom", "", "The rom file to load")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultMaxSteps, "Maximum number of steps (0 = unlimited)")
	cmd.Flags().BoolVar(&romOnly, "rom-only", false, "Execute from the bare ROM bus, every write fails")
	cmd.Flags().BoolVar(&breakOnIllegal, "break-on-illegal", false, "Stop at an illegal opcode instead of failing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	return cmd
}

func headerCommand() *cobra.Command {
	var romFile string

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Print the cartridge header and fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := utils.LoadFile(romFile)
			if err != nil {
				return err
			}
			cart, err := cartridge.New(rom)
			if err != nil {
				return err
			}

			header := cart.Header()
			fmt.Printf("title:        %s\n", header.Title)
			fmt.Printf("hardware:     %s\n", header.Hardware())
			fmt.Printf("type:         %s\n", header.CartridgeType)
			fmt.Printf("rom size:     %dkB\n", header.ROMSize/1024)
			fmt.Printf("ram size:     %dkB\n", header.RAMSize/1024)
			fmt.Printf("checksum:     0x%02X (valid: %t)\n", header.HeaderChecksum, header.ChecksumValid())
			fmt.Printf("fingerprint:  %016x\n", cart.Fingerprint())
			if err := cart.Validate(); err != nil {
				fmt.Printf("problems:     %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&romFile, "rom", "", "The rom file to load")
	if err := cmd.MarkFlagRequired("rom"); err != nil {
		panic(err)
	}

	return cmd
}
