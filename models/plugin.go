package models

type BriefInstallerInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Repo      string `json:"repo"`
	Installed bool   `json:"installed"`
}

type PluginDetail struct {
	ID                 string             `json:"id"`
	TkeelVersion       string             `json:"tkeel_version"`
	Secret             string             `json:"secret"`
	RegisterTimestamp  string             `json:"register_timestamp"`
	Status             string             `json:"status"`
	BriefInstallerInfo BriefInstallerInfo `json:"brief_installer_info"`
	ConsoleEntries     []MenuEntry        `json:"console_entries"`
}

type DeletePluginData struct {
	Types  string       `json:"@types"`
	Plugin PluginDetail `json:"plugin"`
}

type RepoInstallersData struct {
	Type            string               `json:"@type"`
	BriefInstallers []BriefInstallerInfo `json:"brief_installers"`
}

// RepoInstallers is the installer listing of one repo. Installers is empty
// when the repo query failed.
type RepoInstallers struct {
	Repo       string               `json:"repo"`
	Installers []BriefInstallerInfo `json:"installers"`
	Err        error                `json:"-"`
}
