package dashboard

// Decision resultado de evaluar una guarda de ruta.
type Decision int

const (
	// Wait la sesión aún se está resolviendo: no renderizar.
	Wait Decision = iota
	// RedirectLogin no hay sesión.
	RedirectLogin
	// RedirectDashboard hay sesión pero no alcanza el rol requerido.
	RedirectDashboard
	// Allow renderizar la ruta.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect:/login"
	case RedirectDashboard:
		return "redirect:/dashboard"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard evalúa PrivateRoute (requireAdmin=false) o AdminRoute (requireAdmin=true).
func Guard(s Session, requireAdmin bool) Decision {
	if s.Loading {
		return Wait
	}
	if s.User == nil {
		return RedirectLogin
	}
	if requireAdmin && !s.IsAdmin() {
		return RedirectDashboard
	}
	return Allow
}

// Access nivel de acceso de una ruta.
type Access int

const (
	Public Access = iota
	Private
	AdminOnly
)

// Route ruta de la aplicación.
type Route struct {
	Path   string
	Name   string
	Access Access
}

// Rutas de la aplicación.
const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathEnergy    = "/dashboard/energy"
	PathAnalytics = "/dashboard/analytics"
	PathSettings  = "/dashboard/settings"
	PathUsers     = "/dashboard/users"
	PathPanels    = "/dashboard/panels"
)

// Routes tabla de rutas en el orden del menú.
var Routes = []Route{
	{Path: PathLogin, Name: "Iniciar sesión", Access: Public},
	{Path: PathRegister, Name: "Registro", Access: Public},
	{Path: PathDashboard, Name: "Resumen", Access: Private},
	{Path: PathEnergy, Name: "Monitoreo de Energía", Access: Private},
	{Path: PathAnalytics, Name: "Análisis", Access: Private},
	{Path: PathSettings, Name: "Configuración", Access: Private},
	{Path: PathPanels, Name: "Gestión de Paneles", Access: AdminOnly},
	{Path: PathUsers, Name: "Gestión de Usuarios", Access: AdminOnly},
}

// Resolve decide qué hacer al navegar a path. "/" redirige al dashboard; una ruta
// desconocida no se renderiza (ok=false).
func Resolve(path string, s Session) (d Decision, ok bool) {
	if path == "/" {
		return RedirectDashboard, true
	}
	for _, r := range Routes {
		if r.Path != path {
			continue
		}
		switch r.Access {
		case Public:
			return Allow, true
		case Private:
			return Guard(s, false), true
		default:
			return Guard(s, true), true
		}
	}
	return Wait, false
}

// Navigation entradas del menú lateral visibles para la sesión.
func Navigation(s Session) []Route {
	if s.User == nil {
		return nil
	}
	var items []Route
	for _, r := range Routes {
		switch {
		case r.Access == Private:
			items = append(items, r)
		case r.Access == AdminOnly && s.IsAdmin():
			items = append(items, r)
		}
	}
	return items
}
