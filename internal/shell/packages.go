package shell

import (
	"slices"
	"strings"
)

// PackageManager identifies a package manager.
type PackageManager string

const (
	PackageManagerApt     PackageManager = "apt"
	PackageManagerApk     PackageManager = "apk"
	PackageManagerYum     PackageManager = "yum"
	PackageManagerDnf     PackageManager = "dnf"
	PackageManagerZypper  PackageManager = "zypper"
	PackageManagerPip     PackageManager = "pip"
	PackageManagerNpm     PackageManager = "npm"
	PackageManagerGem     PackageManager = "gem"
	PackageManagerUnknown PackageManager = ""
)

// PackageInstall is a detected package installation.
type PackageInstall struct {
	Manager  PackageManager
	Command  Command
	Packages []string
}

type packageManagerInfo struct {
	manager PackageManager
	// subcommands that trigger install mode
	installCommands []string
	// flags that consume the following argument
	valueFlags []string
}

var pipValueFlags = []string{
	"-r", "--requirement", "-c", "--constraint", "-e", "--editable", "-t", "--target",
	"-i", "--index-url", "--extra-index-url", "--trusted-host", "-f", "--find-links",
	"--prefix", "--root", "--src", "--upgrade-strategy", "--platform", "--python-version",
	"--implementation", "--abi", "--progress-bar", "--log", "--proxy", "--retries",
	"--timeout", "--exists-action", "--cert", "--client-cert", "--cache-dir",
}

var packageManagers = map[string]packageManagerInfo{
	"apt-get":  {PackageManagerApt, []string{"install"}, []string{"-o", "--option", "-t", "--target-release", "-c", "--config-file"}},
	"apt":      {PackageManagerApt, []string{"install"}, []string{"-o", "--option", "-t", "--target-release"}},
	"apk":      {PackageManagerApk, []string{"add"}, []string{"-X", "--repository", "-t", "--virtual", "--root", "-p"}},
	"yum":      {PackageManagerYum, []string{"install"}, []string{"-c", "--config", "--enablerepo", "--disablerepo", "--installroot"}},
	"dnf":      {PackageManagerDnf, []string{"install"}, []string{"-c", "--config", "--enablerepo", "--disablerepo", "--installroot"}},
	"microdnf": {PackageManagerDnf, []string{"install"}, []string{"--enablerepo", "--disablerepo"}},
	"zypper":   {PackageManagerZypper, []string{"install", "in"}, []string{"-r", "--repo"}},
	"pip":      {PackageManagerPip, []string{"install"}, pipValueFlags},
	"pip3":     {PackageManagerPip, []string{"install"}, pipValueFlags},
	"npm":      {PackageManagerNpm, []string{"install", "i", "add"}, []string{"--prefix", "--registry", "--cache", "--tag"}},
	"gem":      {PackageManagerGem, []string{"install", "i"}, []string{"-v", "--version", "-i", "--install-dir", "-n", "--bindir", "-s", "--source", "-P", "--trust-policy", "--platform"}},
}

// InstallPackages returns the packages installed by cmd, or false if cmd is
// not a package installation. "python -m pip install" is recognised too.
func InstallPackages(cmd Command) (PackageInstall, bool) {
	name, args := cmd.Name, cmd.Args
	if strings.HasPrefix(name, "python") && len(args) >= 2 && args[0] == "-m" && strings.HasPrefix(args[1], "pip") {
		name, args = "pip", args[2:]
	}
	if strings.HasPrefix(name, "pip") && name != "pip" && name != "pip3" {
		name = "pip"
	}

	info, ok := packageManagers[name]
	if !ok {
		return PackageInstall{}, false
	}

	installIdx := -1
	skipNext := false
	for i, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			skipNext = !strings.Contains(arg, "=") && slices.Contains(info.valueFlags, arg)
			continue
		}
		if slices.Contains(info.installCommands, arg) {
			installIdx = i
		}
		break
	}
	if installIdx < 0 {
		return PackageInstall{}, false
	}
	return PackageInstall{
		Manager:  info.manager,
		Command:  cmd,
		Packages: filterPackageArgs(args[installIdx+1:], info.valueFlags),
	}, true
}

// ExtractPackageInstalls returns every package installation in the view.
func (ps *ParsedShell) ExtractPackageInstalls() []PackageInstall {
	if ps == nil {
		return nil
	}
	var out []PackageInstall
	for _, c := range ps.Commands {
		if pi, ok := InstallPackages(c); ok {
			out = append(out, pi)
		}
	}
	return out
}

// filterPackageArgs drops flags (and the values of flags that take one).
func filterPackageArgs(args, valueFlags []string) []string {
	packages := make([]string, 0, len(args))
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && slices.Contains(valueFlags, arg) {
				skipNext = true
			}
			continue
		}
		packages = append(packages, arg)
	}
	return packages
}
