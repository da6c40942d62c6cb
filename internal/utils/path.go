package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver provides robust path resolution for the markserve binaries
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	configDir := getConfigDir(homeDir)

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      configDir,
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		execPath, execDir, configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "markserve")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "markserve")
		}
		return filepath.Join(homeDir, ".config", "markserve")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "markserve")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "markserve")
	default:
		return filepath.Join(homeDir, ".markserve")
	}
}

// GetDatabasePath resolves the bbolt database file. Absolute paths win;
// relative paths are tried against the executable dir, then the working
// dir; an existing file decides. When nothing exists yet the config dir
// is used so a fresh install creates its database somewhere writable.
func (pr *PathResolver) GetDatabasePath(userSpecifiedPath string) (string, error) {
	if filepath.IsAbs(userSpecifiedPath) {
		return userSpecifiedPath, nil
	}

	candidates := []string{
		filepath.Join(pr.executableDir, userSpecifiedPath),
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found existing database: %s", path)
			return path, nil
		}
		log.Debugf("Database candidate not present: %s", path)
	}

	if pr.ensureDirWritable(pr.configDir) {
		return filepath.Join(pr.configDir, filepath.Base(userSpecifiedPath)), nil
	}
	return candidates[0], nil
}

// GetConfigPath returns the full path for a config file
// It ensures the config directory exists and handles read-only filesystem issues
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	configPath := filepath.Join(pr.configDir, filename)
	if pr.ensureDirWritable(pr.configDir) {
		return configPath, nil
	}

	// Fallback locations if config dir is not writable
	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".markserve"),
		filepath.Join(os.TempDir(), "markserve"),
		pr.executableDir,
	}

	for _, dir := range fallbackDirs {
		if pr.ensureDirWritable(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureDirWritable creates the directory if needed and tests writability
func (pr *PathResolver) ensureDirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}
