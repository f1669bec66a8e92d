package cmd

// Shorthands over the shared printer so every command reports status the same way.

func printSection(title string)  { printer.Section(title) }
func printBullet(title string)   { printer.Bullet(title) }
func printOK(name, msg string)   { printer.OK(name, msg) }
func printErr(name, msg string)  { printer.Err(name, msg) }
func printWarn(name, msg string) { printer.Warn(name, msg) }
func printSkip(name, msg string) { printer.Skip(name, msg) }
func printMiss(name, msg string) { printer.Miss(name, msg) }
func printInfo(name, msg string) { printer.Info(name, msg) }
