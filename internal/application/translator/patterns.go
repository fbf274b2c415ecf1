package translator

// Category names one class of natural-language phrasing.
type Category string

// Compound categories render to several chained commands and must be tested
// before the single-step categories whose phrasing they contain.
const (
	CreateAndMove Category = "create_and_move"
	CreateAndCopy Category = "create_and_copy"
	BackupFiles   Category = "backup_files"
	OrganizeFiles Category = "organize_files"
)

// Single-step categories.
const (
	CreateFolder    Category = "create_folder"
	CreateFile      Category = "create_file"
	MoveFile        Category = "move_file"
	CopyFile        Category = "copy_file"
	DeleteFile      Category = "delete_file"
	ListFiles       Category = "list_files"
	ChangeDirectory Category = "change_directory"
)

// Informational categories.
const (
	ShowHelp    Category = "show_help"
	SystemInfo  Category = "system_info"
	ProcessInfo Category = "process_info"
	MemoryInfo  Category = "memory_info"
	CPUInfo     Category = "cpu_info"
)

// Renderer turns a match into a shell command.
type Renderer func(MatchResult) string

// Intent is one row of the pattern table: every pattern is tried in order and
// the first hit is rendered with Render.
type Intent struct {
	Category Category
	Patterns []string
	Render   Renderer
}

// Fragments reused across patterns.
const (
	folderNoun = `(?:folder|directory)`
	fileNoun   = `(?:file|document)`
	named      = `(?:called\s+|named\s+)?`
	intoIt     = `(?:to|into)\s+(?:it|that\s+folder)`
	// what / what is / what's / whats
	whatIs  = `what(?:'s|’s|s|\s+is)?`
	whatAre = `what(?:'s|’s|s|\s+are)?`
)

// DefaultTable returns the pattern table in evaluation order. The order is
// significant: a compound phrase also satisfies single-step patterns, and the
// change_directory patterns are broad enough to swallow phrases meant for the
// informational categories that follow them.
func DefaultTable() []Intent {
	return []Intent{
		{
			Category: CreateAndMove,
			Patterns: []string{
				`create\s+(?:a\s+)?(?:new\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+move\s+(?P<file>[^\s]+)\s+` + intoIt,
				`make\s+(?:a\s+)?(?:new\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+move\s+(?P<file>[^\s]+)\s+` + intoIt,
				`new\s+` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+move\s+(?P<file>[^\s]+)\s+` + intoIt,
			},
			Render: chain(
				"mkdir {folder}",
				"mv {file} {folder}/",
			),
		},
		{
			Category: CreateAndCopy,
			Patterns: []string{
				`create\s+(?:a\s+)?(?:new\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+copy\s+(?P<file>[^\s]+)\s+` + intoIt,
				`make\s+(?:a\s+)?(?:new\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+copy\s+(?P<file>[^\s]+)\s+` + intoIt,
				`new\s+` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+copy\s+(?P<file>[^\s]+)\s+` + intoIt,
			},
			Render: chain(
				"mkdir {folder}",
				"cp {file} {folder}/",
			),
		},
		{
			Category: BackupFiles,
			Patterns: []string{
				`create\s+(?:a\s+)?(?:backup|backup\s+folder)\s+` + named + `(?P<folder>[^\s]+)\s+and\s+copy\s+(?:all\s+)?(?P<pattern>[^\s]+)\s+(?:files\s+)?` + intoIt,
				`make\s+(?:a\s+)?(?:backup|backup\s+folder)\s+` + named + `(?P<folder>[^\s]+)\s+and\s+copy\s+(?:all\s+)?(?P<pattern>[^\s]+)\s+(?:files\s+)?` + intoIt,
			},
			Render: chain(
				"mkdir {folder}",
				"cp {pattern}* {folder}/",
			),
		},
		{
			Category: OrganizeFiles,
			Patterns: []string{
				`create\s+(?:a\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)\s+and\s+move\s+(?:all\s+)?(?P<pattern>[^\s]+)\s+(?:files\s+)?` + intoIt,
				`organize\s+(?:all\s+)?(?P<pattern>[^\s]+)\s+(?:files\s+)?(?:into\s+)?(?:a\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)`,
			},
			Render: chain(
				"mkdir {folder}",
				"mv {pattern}* {folder}/",
			),
		},
		{
			Category: CreateFolder,
			Patterns: []string{
				`create\s+(?:a\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)`,
				`make\s+(?:a\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)`,
				`new\s+` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)`,
				`add\s+(?:a\s+)?` + folderNoun + `\s+` + named + `(?P<folder>[^\s]+)`,
			},
			Render: template("mkdir {folder}"),
		},
		{
			Category: CreateFile,
			Patterns: []string{
				`create\s+(?:a\s+)?` + fileNoun + `\s+` + named + `(?P<file>[^\s]+)`,
				`make\s+(?:a\s+)?` + fileNoun + `\s+` + named + `(?P<file>[^\s]+)`,
				`new\s+` + fileNoun + `\s+` + named + `(?P<file>[^\s]+)`,
				`add\s+(?:a\s+)?` + fileNoun + `\s+` + named + `(?P<file>[^\s]+)`,
			},
			Render: template("touch {file}"),
		},
		{
			Category: MoveFile,
			Patterns: []string{
				`move\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
				`put\s+(?P<src>[^\s]+)\s+(?:in|into)\s+(?P<dst>[^\s]+)`,
				`transfer\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
				`relocate\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
			},
			Render: template("mv {src} {dst}"),
		},
		{
			Category: CopyFile,
			Patterns: []string{
				`copy\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
				`duplicate\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
				`backup\s+(?P<src>[^\s]+)\s+(?:to|into)\s+(?P<dst>[^\s]+)`,
			},
			Render: template("cp {src} {dst}"),
		},
		{
			Category: DeleteFile,
			Patterns: []string{
				`delete\s+(?P<file>[^\s]+)`,
				`remove\s+(?P<file>[^\s]+)`,
				`erase\s+(?P<file>[^\s]+)`,
				`get\s+rid\s+of\s+(?P<file>[^\s]+)`,
			},
			Render: template("rm {file}"),
		},
		{
			Category: ListFiles,
			Patterns: []string{
				`list\s+(?:files|contents)`,
				`show\s+(?:files|contents)`,
				`show\s+me\s+(?:my\s+)?(?:files|contents)`,
				`what\s+(?:files|is)\s+in\s+(?:this\s+)?directory`,
				`display\s+(?:files|contents)`,
				`see\s+(?:files|contents)`,
			},
			Render: template("ls"),
		},
		{
			Category: ChangeDirectory,
			Patterns: []string{
				`go\s+(?:to\s+|into\s+)?(?:the\s+)?(?P<dir>[^\s]+(?:\s+[^\s]+)*)`,
				`navigate\s+(?:to\s+)?(?:the\s+)?(?P<dir>[^\s]+(?:\s+[^\s]+)*)`,
				`enter\s+(?:the\s+)?(?P<dir>[^\s]+(?:\s+[^\s]+)*)`,
				`change\s+(?:to\s+)?(?:the\s+)?(?P<dir>[^\s]+(?:\s+[^\s]+)*)`,
				`switch\s+(?:to\s+)?(?:the\s+)?(?P<dir>[^\s]+(?:\s+[^\s]+)*)`,
			},
			Render: template("cd {dir}"),
		},
		{
			Category: ShowHelp,
			Patterns: []string{
				`help\s+(?:me\s+)?(?:with\s+)?(?:commands|terminal)`,
				`what\s+(?:commands|can)\s+i\s+(?:use|do)`,
				`how\s+do\s+i\s+(?:use|work\s+with)\s+this`,
				`show\s+me\s+(?:the\s+)?(?:commands|help)`,
			},
			Render: template("help"),
		},
		{
			Category: SystemInfo,
			Patterns: []string{
				whatIs + `\s+(?:my\s+)?(?:system|computer)\s+(?:info|information)`,
				`show\s+(?:me\s+)?(?:system|computer)\s+(?:info|information)`,
				`tell\s+me\s+(?:about\s+)?(?:my\s+)?(?:system|computer)`,
				`display\s+(?:system|computer)\s+(?:info|information)`,
			},
			Render: template("system_info"),
		},
		{
			Category: ProcessInfo,
			Patterns: []string{
				whatAre + `\s+(?:the\s+)?(?:running\s+)?processes`,
				`show\s+(?:me\s+)?(?:the\s+)?(?:running\s+)?processes`,
				`list\s+(?:the\s+)?(?:running\s+)?processes`,
				`display\s+(?:the\s+)?(?:running\s+)?processes`,
			},
			Render: template("ps"),
		},
		{
			Category: MemoryInfo,
			Patterns: []string{
				whatIs + `\s+(?:my\s+)?(?:memory|ram)\s+(?:usage|info)`,
				`show\s+(?:me\s+)?(?:memory|ram)\s+(?:usage|info)`,
				`tell\s+me\s+(?:about\s+)?(?:my\s+)?(?:memory|ram)`,
				`display\s+(?:memory|ram)\s+(?:usage|info)`,
			},
			Render: template("free"),
		},
		{
			Category: CPUInfo,
			Patterns: []string{
				whatIs + `\s+(?:my\s+)?(?:cpu|processor)\s+(?:usage|info)`,
				`show\s+(?:me\s+)?(?:cpu|processor)\s+(?:usage|info)`,
				`tell\s+me\s+(?:about\s+)?(?:my\s+)?(?:cpu|processor)`,
				`display\s+(?:cpu|processor)\s+(?:usage|info)`,
			},
			Render: template("cpu"),
		},
	}
}
