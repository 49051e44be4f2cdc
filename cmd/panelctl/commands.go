package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/effitech/solar-api/internal/client"
	"github.com/effitech/solar-api/internal/dashboard"
	"github.com/effitech/solar-api/pkg/logger"
)

// errReported el mensaje ya se mostró al usuario.
var errReported = errors.New("panelctl: error notificado")

type options struct {
	apiURL    string
	tokenFile string
	stdin     io.Reader
	stdout    io.Writer
	log       *logger.Logger
}

// app estado compartido por los subcomandos.
type app struct {
	out     io.Writer
	in      *bufio.Reader
	log     *logger.Logger
	api     *client.Client
	session *dashboard.SessionStore
	notify  *toastPrinter
}

type command struct {
	usage string
	route string // ruta del panel cuya guarda aplica; "" = pública
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":          {usage: "login -email E -password P", run: cmdLogin},
	"register":       {usage: "register -name N -email E -password P", run: cmdRegister},
	"logout":         {usage: "logout", run: cmdLogout},
	"whoami":         {usage: "whoami", route: dashboard.PathDashboard, run: cmdWhoami},
	"overview":       {usage: "overview", route: dashboard.PathDashboard, run: cmdOverview},
	"energy":         {usage: "energy", route: dashboard.PathEnergy, run: cmdEnergy},
	"analytics":      {usage: "analytics", route: dashboard.PathAnalytics, run: cmdAnalytics},
	"panels":         {usage: "panels [búsqueda]", route: dashboard.PathPanels, run: cmdPanels},
	"panel-create":   {usage: "panel-create -model M -location L -capacity C", route: dashboard.PathPanels, run: cmdPanelCreate},
	"panel-update":   {usage: "panel-update -id ID [-model M] [-location L] [-capacity C] [-status S]", route: dashboard.PathPanels, run: cmdPanelUpdate},
	"panel-delete":   {usage: "panel-delete -id ID [-yes]", route: dashboard.PathPanels, run: cmdPanelDelete},
	"panel-assign":   {usage: "panel-assign -id ID -user USER_ID", route: dashboard.PathPanels, run: cmdPanelAssign},
	"panel-unassign": {usage: "panel-unassign -id ID", route: dashboard.PathPanels, run: cmdPanelUnassign},
	"report":         {usage: "report [-out archivo.pdf]", route: dashboard.PathPanels, run: cmdReport},
	"users":          {usage: "users [búsqueda]", route: dashboard.PathUsers, run: cmdUsers},
	"user-role":      {usage: "user-role -id ID -role admin|user", route: dashboard.PathUsers, run: cmdUserRole},
	"user-delete":    {usage: "user-delete -id ID [-yes]", route: dashboard.PathUsers, run: cmdUserDelete},
}

func run(ctx context.Context, opts options, args []string) error {
	if opts.log == nil {
		opts.log = logger.Nop()
	}
	if len(args) == 0 {
		printUsage(opts.stdout)
		return errors.New("falta el subcomando")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(opts.stdout)
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}

	api := client.New(opts.apiURL)
	a := &app{
		out:     opts.stdout,
		in:      bufio.NewReader(opts.stdin),
		log:     opts.log,
		api:     api,
		session: dashboard.NewSessionStore(api, dashboard.NewFileTokenStore(opts.tokenFile), opts.log),
		notify:  &toastPrinter{w: opts.stdout},
	}
	if err := a.session.Init(ctx); err != nil {
		return err
	}
	if cmd.route != "" {
		if err := a.guard(cmd.route); err != nil {
			return err
		}
	}
	return cmd.run(ctx, a, args[1:])
}

func (a *app) guard(path string) error {
	decision, _ := dashboard.Resolve(path, a.session.Current())
	switch decision {
	case dashboard.Allow:
		return nil
	case dashboard.RedirectLogin:
		a.notify.Error("Debe iniciar sesión: panelctl login -email E -password P")
	default:
		a.notify.Error("No tiene permisos de administrador")
	}
	return errReported
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "uso: panelctl <subcomando> [opciones]")
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
}

// toastPrinter Notifier sobre la salida estándar.
type toastPrinter struct {
	w io.Writer
}

func (t *toastPrinter) Success(msg string) { fmt.Fprintln(t.w, "✓", msg) }
func (t *toastPrinter) Error(msg string)   { fmt.Fprintln(t.w, "✗", msg) }

// promptConfirmer pregunta por la entrada estándar; con yes acepta sin preguntar.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
	yes bool
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	if p.yes {
		return true
	}
	fmt.Fprint(p.out, prompt+" [s/N]: ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// reported convierte un error ya notificado en errReported.
func reported(err error) error {
	if err != nil {
		return errReported
	}
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login", a.out)
	email := fs.String("email", "", "correo")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, err := dashboard.NewAuthScreens(a.session, a.notify).Login(ctx, dashboard.LoginForm{Email: *email, Password: *password})
	return reported(err)
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register", a.out)
	name := fs.String("name", "", "nombre completo")
	email := fs.String("email", "", "correo")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, err := dashboard.NewAuthScreens(a.session, a.notify).Register(ctx, dashboard.RegisterForm{
		FullName: *name, Email: *email, Password: *password, ConfirmPassword: *password,
	})
	return reported(err)
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	a.notify.Success("Sesión cerrada")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	u := a.session.Current().User
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.FullName, u.Email, dashboard.RoleLabel(u.Role))
	fmt.Fprintln(a.out, "Menú:")
	for _, r := range dashboard.Navigation(a.session.Current()) {
		fmt.Fprintf(a.out, "  %-22s %s\n", r.Path, r.Name)
	}
	return nil
}

func cmdOverview(ctx context.Context, a *app, _ []string) error {
	out, err := dashboard.NewViews(a.api, a.notify).Overview(ctx)
	if err != nil {
		return errReported
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	for _, m := range out.Metrics {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.Value, m.Change)
	}
	fmt.Fprintln(tw)
	for _, s := range out.SystemStatus {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Status)
	}
	return tw.Flush()
}

func cmdEnergy(ctx context.Context, a *app, _ []string) error {
	out, err := dashboard.NewViews(a.api, a.notify).Energy(ctx)
	if err != nil {
		return errReported
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	for _, s := range out.Sources {
		fmt.Fprintf(tw, "%s\t%s / %s kWh\t%d%%\t%s\n", s.Name, dashboard.FormatCount(s.Current), dashboard.FormatCount(s.Capacity), s.Percentage, s.Status)
	}
	fmt.Fprintf(tw, "Pico del día\t%s kWh\n", dashboard.FormatCount(out.Peak))
	return tw.Flush()
}

func cmdAnalytics(ctx context.Context, a *app, _ []string) error {
	out, err := dashboard.NewViews(a.api, a.notify).Analytics(ctx)
	if err != nil {
		return errReported
	}
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "MES\tPRODUCCIÓN\tCONSUMO\tAHORRO")
	for _, m := range out.Monthly {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Month, dashboard.FormatCount(m.Production), dashboard.FormatCount(m.Consumption), dashboard.FormatCount(m.Savings))
	}
	fmt.Fprintf(tw, "Total\t\t\t%s\n", dashboard.FormatCount(out.TotalSaving))
	return tw.Flush()
}

func (a *app) panelManager(yes bool) *dashboard.PanelManager {
	return dashboard.NewPanelManager(a.api, a.notify, &promptConfirmer{in: a.in, out: a.out, yes: yes}, a.log)
}

func cmdPanels(ctx context.Context, a *app, args []string) error {
	m := a.panelManager(false)
	if err := m.Load(ctx); err != nil {
		return errReported
	}
	m.SetSearch(strings.Join(args, " "))

	s := m.Stats()
	fmt.Fprintf(a.out, "Total: %d  Activos: %d  Asignados: %d  Capacidad: %s\n\n",
		s.Total, s.Active, s.Assigned, dashboard.FormatCapacity(s.TotalCapacity))
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODELO\tUBICACIÓN\tCAPACIDAD\tESTADO\tASIGNADO A")
	for _, p := range m.Visible() {
		owner := "Sin asignar"
		if p.UserName != nil {
			owner = *p.UserName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Model, p.Location, dashboard.FormatCapacity(p.Capacity), p.Status, owner)
	}
	return tw.Flush()
}

func cmdPanelCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("panel-create", a.out)
	var form dashboard.PanelForm
	fs.StringVar(&form.Model, "model", "", "modelo")
	fs.StringVar(&form.Location, "location", "", "ubicación")
	fs.StringVar(&form.Capacity, "capacity", "", "capacidad en kWh")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return reported(a.panelManager(false).Create(ctx, form))
}

func cmdPanelUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("panel-update", a.out)
	id := fs.String("id", "", "id del panel")
	model := fs.String("model", "", "modelo")
	location := fs.String("location", "", "ubicación")
	capacity := fs.String("capacity", "", "capacidad en kWh")
	status := fs.String("status", "", "activo, inactivo o mantenimiento")
	if err := fs.Parse(args); err != nil {
		return err
	}
	current, err := a.api.GetPanel(ctx, *id)
	if err != nil {
		a.notify.Error(client.DetailOr(err, dashboard.MsgPanelUpdateFailed))
		return errReported
	}
	// El formulario de edición parte de los valores actuales.
	form := dashboard.PanelForm{
		Model:    orDefault(*model, current.Model),
		Location: orDefault(*location, current.Location),
		Capacity: orDefault(*capacity, current.Capacity.String()),
		Status:   orDefault(*status, current.Status),
	}
	return reported(a.panelManager(false).Update(ctx, *id, form))
}

func cmdPanelDelete(ctx context.Context, a *app, args []string) error {
	fs := newFlags("panel-delete", a.out)
	id := fs.String("id", "", "id del panel")
	yes := fs.Bool("yes", false, "no pedir confirmación")
	if err := fs.Parse(args); err != nil {
		return err
	}
	current, err := a.api.GetPanel(ctx, *id)
	if err != nil {
		a.notify.Error(client.DetailOr(err, dashboard.MsgPanelDeleteFailed))
		return errReported
	}
	err = a.panelManager(*yes).Delete(ctx, *id, current.Model)
	if errors.Is(err, dashboard.ErrCancelled) {
		fmt.Fprintln(a.out, "Cancelado")
		return nil
	}
	return reported(err)
}

func cmdPanelAssign(ctx context.Context, a *app, args []string) error {
	fs := newFlags("panel-assign", a.out)
	id := fs.String("id", "", "id del panel")
	user := fs.String("user", "", "id del usuario")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return reported(a.panelManager(false).Assign(ctx, *id, *user))
}

func cmdPanelUnassign(ctx context.Context, a *app, args []string) error {
	fs := newFlags("panel-unassign", a.out)
	id := fs.String("id", "", "id del panel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return reported(a.panelManager(false).Unassign(ctx, *id))
}

func cmdReport(ctx context.Context, a *app, args []string) error {
	fs := newFlags("report", a.out)
	path := fs.String("out", "paneles.pdf", "archivo de salida")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pdf, err := a.api.PanelReport(ctx)
	if err != nil {
		a.notify.Error(client.DetailOr(err, "Error al generar el reporte"))
		return errReported
	}
	if err := os.WriteFile(*path, pdf, 0o644); err != nil {
		return err
	}
	a.notify.Success("Reporte guardado en " + *path)
	return nil
}

func (a *app) userManager(yes bool) *dashboard.UserManager {
	return dashboard.NewUserManager(a.api, a.notify, &promptConfirmer{in: a.in, out: a.out, yes: yes}, a.log)
}

func cmdUsers(ctx context.Context, a *app, args []string) error {
	m := a.userManager(false)
	if err := m.Load(ctx); err != nil {
		return errReported
	}
	m.SetSearch(strings.Join(args, " "))

	s := m.Stats()
	fmt.Fprintf(a.out, "Total: %d  Administradores: %d  Usuarios: %d\n\n", s.Total, s.Admins, s.Users)
	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCORREO\tROL\tREGISTRO")
	for _, u := range m.Visible() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, dashboard.RoleLabel(u.Role), u.CreatedAt.Format("02/01/2006"))
	}
	return tw.Flush()
}

func cmdUserRole(ctx context.Context, a *app, args []string) error {
	fs := newFlags("user-role", a.out)
	id := fs.String("id", "", "id del usuario")
	role := fs.String("role", "", "admin o user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return reported(a.userManager(false).SetRole(ctx, *id, *role))
}

func cmdUserDelete(ctx context.Context, a *app, args []string) error {
	fs := newFlags("user-delete", a.out)
	id := fs.String("id", "", "id del usuario")
	yes := fs.Bool("yes", false, "no pedir confirmación")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m := a.userManager(*yes)
	if err := m.Load(ctx); err != nil {
		return errReported
	}
	name := *id
	for _, u := range m.Users() {
		if u.ID == *id {
			name = u.FullName
		}
	}
	err := m.Delete(ctx, *id, name)
	if errors.Is(err, dashboard.ErrCancelled) {
		fmt.Fprintln(a.out, "Cancelado")
		return nil
	}
	return reported(err)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
