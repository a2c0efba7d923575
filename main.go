package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/nvkalinin/days-calendar/cmd"
	"github.com/nvkalinin/days-calendar/log"
)

type CLI struct {
	Debug bool `short:"d" long:"debug" env:"DEBUG" description:"Выводить отладочные сообщения в лог."`

	Server cmd.Server `command:"server" description:"Запустить сервер (rest + html + периодическая синхронизация набора)."`
	Export cmd.Export `command:"export" description:"Сгенерировать days.ics из days.json."`
	Show   cmd.Show   `command:"show" description:"Показать месяц с памятными днями в терминале."`
	Sync   cmd.Sync   `command:"sync" description:"Синхронизировать набор памятных дней на запущенном сервере."`
	Backup cmd.Backup `command:"backup" description:"Сделать резервную копию хранилища bolt."`
}

func main() {
	cli := &CLI{}
	parser := flags.NewParser(cli, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		log.Setup(cli.Debug)

		if cmd != nil {
			return cmd.Execute(args)
		}
		return nil
	}

	if _, err := parser.Parse(); err != nil {
		flagsErr, isFlagsErr := err.(*flags.Error)
		if isFlagsErr && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
