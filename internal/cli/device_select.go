package cli

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/vburojevic/xsim/internal/domain"
	"github.com/vburojevic/xsim/internal/prompt"
)

func deviceChoice(d domain.Device) prompt.Choice {
	return prompt.Choice{
		Label:       fmt.Sprintf("%s (%s)", d.Name, d.Version()),
		Description: fmt.Sprintf("%s • %s", d.UDID, d.State),
		Value:       d.UDID,
	}
}

func deviceChoices(devices []domain.Device) []prompt.Choice {
	return lo.Map(devices, func(d domain.Device, _ int) prompt.Choice {
		return deviceChoice(d)
	})
}

// selectDevice asks for one of devices and returns the matching record.
func selectDevice(ctx context.Context, p prompt.Prompter, title string, devices []domain.Device) (domain.Device, error) {
	choice, err := p.Select(ctx, title, deviceChoices(devices))
	if err != nil {
		return domain.Device{}, err
	}
	d, ok := lo.Find(devices, func(d domain.Device) bool {
		return d.UDID == choice.Value
	})
	if !ok {
		return domain.Device{}, fmt.Errorf("selected device %s disappeared", choice.Value)
	}
	return d, nil
}

// devicesByUDID returns the records for the chosen values, in choice order.
func devicesByUDID(devices []domain.Device, choices []prompt.Choice) []domain.Device {
	byUDID := lo.KeyBy(devices, func(d domain.Device) string { return d.UDID })
	return lo.FilterMap(choices, func(c prompt.Choice, _ int) (domain.Device, bool) {
		d, ok := byUDID[c.Value]
		return d, ok
	})
}
