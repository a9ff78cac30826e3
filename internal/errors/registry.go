package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reactivity (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryReactivity,
		Message:  "Write to readonly object ignored",
		Detail:   "The target is wrapped with Readonly or ShallowReadonly. The write was dropped and reported as successful.",
	},
	"R002": {
		Category: CategoryReactivity,
		Message:  "Value cannot be made reactive",
		Detail:   "Only map[string]any values and existing wrappers can be wrapped. The call returned nil.",
	},
	"R003": {
		Category: CategoryReactivity,
		Message:  "Computed value is read-only",
		Detail:   "A computed ref has no setter. Assign to the refs it derives from instead.",
	},
	"R004": {
		Category: CategoryReactivity,
		Message:  "Setup context used after setup returned",
		Detail:   "Provide, Inject and Instance are only available while setup runs synchronously.",
	},

	// ============================================
	// Rendering (V001-V099)
	// ============================================

	"V001": {
		Category: CategoryRender,
		Message:  "Unsupported vnode type",
		Detail:   "H accepts a tag name, a *Component, Fragment or Text.",
	},
	"V002": {
		Category: CategoryRender,
		Message:  "Unsupported vnode children",
		Detail:   "Children must be nil, a string, a VNode, a []VNode, or Slots for components.",
	},
	"V003": {
		Category: CategoryRender,
		Message:  "Template compiler not registered",
		Detail:   "The component has a template but the renderer was created without WithCompiler.",
	},
	"V004": {
		Category: CategoryRender,
		Message:  "Component has no render function",
		Detail:   "Define Render, return a render function from Setup, or provide a Template.",
	},
	"V005": {
		Category: CategoryRender,
		Message:  "Template compilation failed",
	},

	// ============================================
	// Compiler (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryCompile,
		Message:  "Missing end tag",
		Detail:   "An element was opened but its closing tag was not found.",
	},
	"C002": {
		Category: CategoryCompile,
		Message:  "Unexpected end tag",
		Detail:   "A closing tag does not match any open element.",
	},
	"C003": {
		Category: CategoryCompile,
		Message:  "Unterminated interpolation",
		Detail:   "An interpolation was opened with {{ but never closed with }}.",
	},
	"C004": {
		Category: CategoryCompile,
		Message:  "Malformed tag",
		Detail:   "Only lowercase tag names without attributes are supported.",
	},
	"C005": {
		Category: CategoryCompile,
		Message:  "Empty interpolation",
		Detail:   "An interpolation must reference a binding, like {{ message }}.",
	},

	// ============================================
	// Scheduler (S001-S099)
	// ============================================

	"S001": {
		Category: CategoryScheduler,
		Message:  "Event loop stopped",
		Detail:   "Work was dispatched after the loop's context was cancelled.",
	},
	"S002": {
		Category: CategoryScheduler,
		Message:  "Event loop already running",
	},

	// ============================================
	// Configuration (G001-G099)
	// ============================================

	"G001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"G002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"G003": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Use a .json, .yaml or .yml file.",
	},

	// ============================================
	// CLI (X001-X099)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Template input required",
		Detail:   "Pass a template file path or use --expr.",
	},
	"X002": {
		Category: CategoryCLI,
		Message:  "Invalid bindings file",
		Detail:   "Bindings must be a JSON or YAML object.",
	},
	"X003": {
		Category: CategoryCLI,
		Message:  "Invalid key list",
		Detail:   "Keys are given as a comma separated list, like 1,2,3.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
